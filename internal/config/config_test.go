package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.InputFile != "./data/sales_data.txt" {
		t.Errorf("InputFile = %q, want default", cfg.InputFile)
	}
	if cfg.Catalog.Limit != 100 {
		t.Errorf("Catalog.Limit = %d, want 100", cfg.Catalog.Limit)
	}
	if cfg.Analytics.TopProducts != 5 {
		t.Errorf("Analytics.TopProducts = %d, want 5", cfg.Analytics.TopProducts)
	}
	if cfg.Analytics.LowQuantityThreshold != 10 {
		t.Errorf("Analytics.LowQuantityThreshold = %d, want 10", cfg.Analytics.LowQuantityThreshold)
	}
}

func TestLoadAppliesFileValuesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input_file: ./data/q1.txt
log_level: debug
catalog:
  base_url: http://localhost:9999/products
  limit: 30
analytics:
  low_quantity_threshold: 3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.InputFile != "./data/q1.txt" {
		t.Errorf("InputFile = %q", cfg.InputFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Catalog.BaseURL != "http://localhost:9999/products" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Limit != 30 {
		t.Errorf("Catalog.Limit = %d, want 30", cfg.Catalog.Limit)
	}
	// Unset values still get defaults.
	if cfg.Catalog.TimeoutSeconds != 15 {
		t.Errorf("Catalog.TimeoutSeconds = %d, want 15", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.Analytics.LowQuantityThreshold != 3 {
		t.Errorf("LowQuantityThreshold = %d, want 3", cfg.Analytics.LowQuantityThreshold)
	}
	if cfg.Analytics.TopProducts != 5 {
		t.Errorf("TopProducts = %d, want 5", cfg.Analytics.TopProducts)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad log level", "log_level: loud\n"},
		{"negative limit", "catalog:\n  limit: -1\n"},
		{"negative rate", "catalog:\n  requests_per_second: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}
