package profileio

import (
	"os"

	yaml "gopkg.in/yaml.v3"
)

// SaveYAML is a SaveFunc writing the snapshot as YAML.
func SaveYAML(keys []KeyRecord, axes []AxisRecord, path string) error {
	data, err := yaml.Marshal(profileDoc{Keys: keys, Axes: axes})
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// LoadYAML is a LoadFunc reading a YAML snapshot.
func LoadYAML(path string) ([]KeyRecord, []AxisRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var doc profileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	return doc.Keys, doc.Axes, nil
}

// Codec bundles a matched save/load pair.
type Codec struct {
	Save SaveFunc
	Load LoadFunc
}

// CodecFor returns the codec for a format name ("toml" or "yaml").
func CodecFor(format string) (Codec, bool) {
	switch format {
	case "toml":
		return Codec{Save: SaveTOML, Load: LoadTOML}, true
	case "yaml", "yml":
		return Codec{Save: SaveYAML, Load: LoadYAML}, true
	default:
		return Codec{}, false
	}
}
