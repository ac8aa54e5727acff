package config

import (
	"os"
	"path/filepath"
	"testing"

	"unshredder/pkg/detect"
	"unshredder/pkg/shred"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Detection.BoundaryThreshold != detect.DefaultBoundaryThreshold {
		t.Errorf("Expected boundary threshold %d, got %d",
			detect.DefaultBoundaryThreshold, cfg.Detection.BoundaryThreshold)
	}
	if cfg.Detection.ConfirmationRatio != detect.DefaultConfirmationRatio {
		t.Errorf("Expected confirmation ratio %f, got %f",
			detect.DefaultConfirmationRatio, cfg.Detection.ConfirmationRatio)
	}
	if cfg.Matching.LeftSampleWidth != shred.DefaultLeftSampleWidth {
		t.Errorf("Expected left sample width %d, got %d",
			shred.DefaultLeftSampleWidth, cfg.Matching.LeftSampleWidth)
	}
	if cfg.Processing.NumCores < 1 {
		t.Errorf("Expected at least one core, got %d", cfg.Processing.NumCores)
	}
	if cfg.Output.SaveIntermediaryResults {
		t.Error("Expected intermediary results disabled by default")
	}
	if cfg.Output.IntermediaryDir != "intermediary_results" {
		t.Errorf("Expected default intermediary dir, got %q", cfg.Output.IntermediaryDir)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose output enabled by default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// A missing file falls back to the defaults
	want := DefaultConfig()
	if cfg.Detection.BoundaryThreshold != want.Detection.BoundaryThreshold {
		t.Errorf("Expected default boundary threshold %d, got %d",
			want.Detection.BoundaryThreshold, cfg.Detection.BoundaryThreshold)
	}
	if cfg.Matching.LeftSampleWidth != want.Matching.LeftSampleWidth {
		t.Errorf("Expected default left sample width %d, got %d",
			want.Matching.LeftSampleWidth, cfg.Matching.LeftSampleWidth)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `detection:
  boundaryThreshold: 50
output:
  verbose: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Detection.BoundaryThreshold != 50 {
		t.Errorf("Expected overridden boundary threshold 50, got %d",
			cfg.Detection.BoundaryThreshold)
	}
	if cfg.Output.Verbose {
		t.Error("Expected verbose output disabled by the config file")
	}

	// Keys the file does not set keep their defaults
	if cfg.Detection.ConfirmationRatio != detect.DefaultConfirmationRatio {
		t.Errorf("Expected default confirmation ratio %f, got %f",
			detect.DefaultConfirmationRatio, cfg.Detection.ConfirmationRatio)
	}
	if cfg.Matching.LeftSampleWidth != shred.DefaultLeftSampleWidth {
		t.Errorf("Expected default left sample width %d, got %d",
			shred.DefaultLeftSampleWidth, cfg.Matching.LeftSampleWidth)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("detection: [not a mapping"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Detection.BoundaryThreshold = 77
	cfg.Processing.NumCores = 2
	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Detection.BoundaryThreshold != 77 {
		t.Errorf("Expected boundary threshold 77 after round trip, got %d",
			loaded.Detection.BoundaryThreshold)
	}
	if loaded.Processing.NumCores != 2 {
		t.Errorf("Expected 2 cores after round trip, got %d", loaded.Processing.NumCores)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := CreateDefaultConfigFile(configPath); err != nil {
		t.Fatalf("CreateDefaultConfigFile failed: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("Expected config file to exist: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Detection.BoundaryThreshold != detect.DefaultBoundaryThreshold {
		t.Errorf("Expected default boundary threshold %d, got %d",
			detect.DefaultBoundaryThreshold, loaded.Detection.BoundaryThreshold)
	}
}
