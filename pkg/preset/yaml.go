package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// prYamlFile mirrors prTomlFile for YAML preset files.
type prYamlFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFromYAML parses custom presets from YAML data.
func LoadFromYAML(data []byte) ([]Preset, error) {
	var raw prYamlFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("preset: parse YAML: %w", err)
	}
	for i, p := range raw.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset: entry %d missing required field 'name'", i)
		}
	}
	return raw.Presets, nil
}

// LoadYAMLFile reads a YAML preset file and registers its presets,
// overwriting same-named entries.
func (r *Registry) LoadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("preset: read %s: %w", path, err)
	}
	presets, err := LoadFromYAML(data)
	if err != nil {
		return err
	}
	for _, p := range presets {
		r.Define(p)
	}
	return nil
}
