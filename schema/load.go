package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a repository definition from a YAML file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read schema file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse schema file: %w", err)
	}
	return config, nil
}

// LoadRepository reads a repository definition from a YAML file and
// resolves it
func LoadRepository(path string) (*Repository, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	repo, err := NewRepository(config)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return repo, nil
}
