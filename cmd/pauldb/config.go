package main

import (
	"os"

	"github.com/goccy/go-yaml"
)

// cliConfig is a small YAML-driven table of CLI defaults: column type
// aliases a deployment wants resolvable in CREATE TABLE beyond the built-in
// TEXT/INT/FLOAT set. It mirrors the teacher's yaml-configured generator
// settings (database.ParseGeneratorConfig) far more modestly, since PaulDB
// has no server connection config to carry.
type cliConfig struct {
	DefaultColumnTypes map[string]string `yaml:"default_column_types"`
}

// loadConfig reads and validates path, returning the parsed config. The
// CLI only uses it today to fail fast on a malformed file; a caller
// embedding pauldb directly would register DefaultColumnTypes against
// db.Registry() itself.
func loadConfig(path string) (*cliConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg cliConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
