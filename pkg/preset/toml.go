package preset

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// prTomlFile is the top-level structure of a custom preset file, allowing
// several presets per file.
type prTomlFile struct {
	Presets []Preset `toml:"presets"`
}

// LoadFromTOML parses custom presets from TOML data. Each preset must have
// a name; empty left and right lists are valid (they render as an empty
// side, not an error).
func LoadFromTOML(data []byte) ([]Preset, error) {
	var raw prTomlFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("preset: parse TOML: %w", err)
	}
	for i, p := range raw.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset: entry %d missing required field 'name'", i)
		}
	}
	return raw.Presets, nil
}

// LoadTOMLFile reads a preset file and registers its presets, overwriting
// same-named entries.
func (r *Registry) LoadTOMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("preset: read %s: %w", path, err)
	}
	presets, err := LoadFromTOML(data)
	if err != nil {
		return err
	}
	for _, p := range presets {
		r.Define(p)
	}
	return nil
}

// SaveToTOML serializes presets to TOML bytes.
func SaveToTOML(presets []Preset) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(prTomlFile{Presets: presets}); err != nil {
		return nil, fmt.Errorf("preset: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}
