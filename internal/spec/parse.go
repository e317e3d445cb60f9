package spec

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseConfig decodes a single YAML document into a zero Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := DecodeConfig(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeConfig decodes over cfg, so fields absent from data keep the values
// cfg already holds. Unknown fields and multiple documents are rejected.
func DecodeConfig(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
