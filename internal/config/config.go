// =============================================================================
// Sales Analytics System - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. A single YAML
// file controls file locations, catalog service settings, and analytics
// parameters.
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Optional: every setting has a sensible default, and a missing config
//     file simply yields the default configuration
//   - Validated: directories are created on load so later stages never race
//     against a missing output directory
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration, loaded from config.yaml.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the pipe-delimited sales data file to process.
	// Default: "./data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// OutputDir is the directory where the report, the enriched data file,
	// and the XLSX workbook are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where the input file is moved after a
	// successful run. Archival is skipped on failure and in dry runs.
	// Default: "./input_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ReportFileFormat names the generated report file. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	// Default: "sales_report_{timestamp}.txt"
	ReportFileFormat string `yaml:"report_file_format"`

	// EnrichedFileFormat names the enriched data file.
	// Default: "enriched_sales_data.txt"
	EnrichedFileFormat string `yaml:"enriched_file_format"`

	// WorkbookFileFormat names the XLSX workbook export.
	// Default: "sales_report_{timestamp}.xlsx"
	WorkbookFileFormat string `yaml:"workbook_file_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// COLLABORATOR SETTINGS
	// =========================================================================

	// Catalog contains settings for the product catalog service.
	Catalog CatalogSettings `yaml:"catalog"`

	// Analytics contains tuning parameters for the aggregation engine.
	Analytics AnalyticsSettings `yaml:"analytics"`
}

// =============================================================================
// CATALOG SETTINGS STRUCTURE
// =============================================================================

// CatalogSettings contains settings for the product catalog HTTP client.
type CatalogSettings struct {
	// BaseURL is the products endpoint of the catalog service.
	// Default: "https://dummyjson.com/products"
	BaseURL string `yaml:"base_url"`

	// Limit is the maximum number of products requested per fetch.
	// Default: 100
	Limit int `yaml:"limit"`

	// TimeoutSeconds is the HTTP request timeout.
	// Default: 15
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// CacheTTLMinutes is how long a fetched product list is reused before
	// the service is queried again.
	// Default: 10
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`

	// RequestsPerSecond throttles outgoing catalog requests.
	// Default: 2
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// =============================================================================
// ANALYTICS SETTINGS STRUCTURE
// =============================================================================

// AnalyticsSettings contains tuning parameters for the aggregation engine.
type AnalyticsSettings struct {
	// TopProducts is the N used for top-product and top-customer tables.
	// Default: 5
	TopProducts int `yaml:"top_products"`

	// LowQuantityThreshold marks products whose total quantity sold is
	// strictly below this value as low performers.
	// Default: 10
	LowQuantityThreshold int `yaml:"low_quantity_threshold"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file exists but cannot be read or parsed.
//
// A missing file is not an error: the default configuration is returned so
// the tool works out of the box with only command-line flags.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "./data/sales_data.txt"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./input_archive"
	}
	if cfg.ReportFileFormat == "" {
		cfg.ReportFileFormat = "sales_report_{timestamp}.txt"
	}
	if cfg.EnrichedFileFormat == "" {
		cfg.EnrichedFileFormat = "enriched_sales_data.txt"
	}
	if cfg.WorkbookFileFormat == "" {
		cfg.WorkbookFileFormat = "sales_report_{timestamp}.xlsx"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://dummyjson.com/products"
	}
	if cfg.Catalog.Limit == 0 {
		cfg.Catalog.Limit = 100
	}
	if cfg.Catalog.TimeoutSeconds == 0 {
		cfg.Catalog.TimeoutSeconds = 15
	}
	if cfg.Catalog.CacheTTLMinutes == 0 {
		cfg.Catalog.CacheTTLMinutes = 10
	}
	if cfg.Catalog.RequestsPerSecond == 0 {
		cfg.Catalog.RequestsPerSecond = 2
	}

	if cfg.Analytics.TopProducts == 0 {
		cfg.Analytics.TopProducts = 5
	}
	if cfg.Analytics.LowQuantityThreshold == 0 {
		cfg.Analytics.LowQuantityThreshold = 10
	}
}

// validate checks the loaded configuration for values that would break the
// pipeline later.
func validate(cfg *Config) error {
	if cfg.Catalog.Limit < 0 {
		return fmt.Errorf("catalog.limit must not be negative")
	}
	if cfg.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("catalog.requests_per_second must not be negative")
	}
	if cfg.Analytics.TopProducts < 0 {
		return fmt.Errorf("analytics.top_products must not be negative")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	return nil
}
