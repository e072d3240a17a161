package profileio

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml"
)

// SaveTOML is a SaveFunc writing the snapshot as TOML. The file is
// written to a temporary sibling first and renamed into place so a
// failed save never clobbers the previous profile.
func SaveTOML(keys []KeyRecord, axes []AxisRecord, path string) error {
	data, err := toml.Marshal(profileDoc{Keys: keys, Axes: axes})
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// LoadTOML is a LoadFunc reading a TOML snapshot.
func LoadTOML(path string) ([]KeyRecord, []AxisRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var doc profileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	return doc.Keys, doc.Axes, nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
