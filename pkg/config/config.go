// Package config provides configuration loading and management for
// unshredder. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"unshredder/pkg/detect"
	"unshredder/pkg/shred"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Detection parameters
	Detection struct {
		// BoundaryThreshold is the strip-difference threshold for boundary
		// candidates. Tuned for one image's statistics, not derived.
		BoundaryThreshold int `yaml:"boundaryThreshold"`

		// ConfirmationRatio is the false-positive rejection cutoff for
		// boundary candidates.
		ConfirmationRatio float64 `yaml:"confirmationRatio"`
	} `yaml:"detection"`

	// Matching parameters
	Matching struct {
		// LeftSampleWidth is the number of strips nearest each edge compared
		// by the left-of probe.
		LeftSampleWidth int `yaml:"leftSampleWidth"`
	} `yaml:"matching"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for pair scoring
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// SaveIntermediaryResults determines whether to save intermediary
		// processing results
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// IntermediaryDir is the directory intermediary results are saved to
		IntermediaryDir string `yaml:"intermediaryDir"`

		// Verbose enables per-stage progress output on stdout
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default detection parameters
	cfg.Detection.BoundaryThreshold = detect.DefaultBoundaryThreshold
	cfg.Detection.ConfirmationRatio = detect.DefaultConfirmationRatio

	// Set default matching parameters
	cfg.Matching.LeftSampleWidth = shred.DefaultLeftSampleWidth

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.IntermediaryDir = "intermediary_results"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
