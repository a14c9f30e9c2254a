package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Dataset   DatasetConfig   `yaml:"dataset"`
}

// SelectionConfig holds the selection algorithm and its parameters
type SelectionConfig struct {
	Algorithm string  `yaml:"algorithm"` // enn, ennth, ennreg, mi
	K         int     `yaml:"k"`
	Mu        float64 `yaml:"mu"`    // ennth only
	Alpha     float64 `yaml:"alpha"` // ennreg and mi
}

// DatasetConfig holds dataset loading options
type DatasetConfig struct {
	// ClassIndex is the zero-based class column; -1 selects the last column
	ClassIndex int `yaml:"class_index"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Selection: SelectionConfig{
			Algorithm: "enn",
			K:         1,
			Mu:        0.7,
			Alpha:     0.05,
		},
		Dataset: DatasetConfig{
			ClassIndex: -1,
		},
	}
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// Resolve absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Check if the file exists
	_, err = os.Stat(absPath)
	if os.IsNotExist(err) {
		return config, nil // Return default config if file doesn't exist
	}

	// Read the file
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, path string) error {
	// Convert config to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
