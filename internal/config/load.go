package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk tuning document. Preset picks the base values, every
// other key overrides them.
type File struct {
	Preset string `yaml:"preset"`
	Config `yaml:",inline"`
}

// Load reads a tuning file and returns the validated result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a tuning document. Unknown keys are errors so a typo does not
// silently fall back to the preset value.
func Parse(data []byte) (*Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	base, err := Preset(head.Preset)
	if err != nil {
		return nil, err
	}

	doc := File{Preset: head.Preset, Config: *base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg := doc.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal writes cfg as a tuning document based on the named preset.
func Marshal(preset string, cfg *Config) ([]byte, error) {
	return yaml.Marshal(File{Preset: preset, Config: *cfg})
}
