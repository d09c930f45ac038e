package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/boardforge/boardforge/board/components"
)

// decodeStrict parses data into out, rejecting unknown fields so typos in a
// config file surface as errors.
func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

// loadDefaults reads component constants from path on top of the built-in
// values. Keys absent from the file keep their built-in value; an empty path
// returns the built-in values unchanged.
func loadDefaults(path string) (components.Defaults, error) {
	cfg := components.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read defaults file: %w", err)
	}
	if err := decodeStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse defaults YAML %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("defaults %s: %w", path, err)
	}
	return cfg, nil
}
