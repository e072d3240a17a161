// Package profileio defines the persistence boundary for key-binding
// profiles: the record shapes handed to save/load callbacks, built-in
// TOML and YAML codecs, and a Store that discovers profile files on
// disk.
package profileio

// KeyRecord is one persisted control binding.
type KeyRecord struct {
	Control       string `toml:"control" yaml:"control"`
	Binding       string `toml:"binding" yaml:"binding"`
	DeviceClass   string `toml:"device_class" yaml:"device_class"`
	AxisDirection int    `toml:"axis_direction" yaml:"axis_direction"`
}

// AxisRecord is one persisted axis entry: the axis identifier and its
// dead-zone threshold.
type AxisRecord struct {
	Axis     string  `toml:"axis" yaml:"axis"`
	DeadZone float64 `toml:"dead_zone" yaml:"dead_zone"`
}

// SaveFunc writes a full binding snapshot to the destination path. It
// may fail with an I/O error; a failed save must not leave a truncated
// file behind where that can be avoided.
type SaveFunc func(keys []KeyRecord, axes []AxisRecord, path string) error

// LoadFunc reads a binding snapshot from the source path. A missing
// file must surface as an error satisfying errors.Is(err, fs.ErrNotExist)
// so callers can distinguish "nothing to load" from real failures.
type LoadFunc func(path string) (keys []KeyRecord, axes []AxisRecord, err error)

// profileDoc is the on-disk document shape shared by the codecs.
type profileDoc struct {
	Keys []KeyRecord  `toml:"keys" yaml:"keys"`
	Axes []AxisRecord `toml:"axes" yaml:"axes"`
}
