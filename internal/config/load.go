package config

import (
	"fmt"
	"os"

	"vireon/internal/spec"
)

// Load decodes the YAML at path over Default, then normalizes and validates
// the result. Fields absent from the file keep their defaults.
func Load(path string) (spec.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := spec.DecodeConfig(raw, &cfg); err != nil {
		return spec.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
