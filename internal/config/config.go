// =============================================================================
// Batch Coordinate Converter - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. The
// config file is YAML; every setting has a default so an absent file or
// an empty document yields a working configuration.
//
// The batch capacity deserves a note: historical deployments shipped with
// both 200 and 1000 row ceilings, so the ceiling is a configuration value
// here, never a constant in processing code.
//
// =============================================================================

package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// InputDir is scanned for batch files when no explicit input path is
	// given. Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives converted batches. Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after successful conversion.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves the input file to InputArchiveDir after a
	// fully successful conversion. Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// DefaultSourceSystem and DefaultDestinationSystem are the system
	// labels used when the command line does not override them.
	// Defaults: "TM75 / Irish Grid - epsg:29903" -> "WGS 84 - epsg:4326"
	DefaultSourceSystem      string `yaml:"default_source_system"`
	DefaultDestinationSystem string `yaml:"default_destination_system"`

	// BatchCapacity is the ceiling on rows per batch. Default: 1000
	BatchCapacity int `yaml:"batch_capacity"`

	// MaxConcurrency is the number of row conversion workers. 1 means a
	// plain sequential pass. Default: 1
	MaxConcurrency int `yaml:"max_concurrency"`

	// OutputNameFormat names the output file when no explicit output
	// path is given. Placeholders: {uuid}, {timestamp}.
	// Default: "converted_{timestamp}_{uuid}.csv"
	OutputNameFormat string `yaml:"output_name_format"`

	// LogLevel controls verbosity: "debug", "info", "warn" or "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		InputDir:                 "./input",
		OutputDir:                "./output",
		InputArchiveDir:          "./input_archive",
		ArchiveOnSuccess:         false,
		DefaultSourceSystem:      "TM75 / Irish Grid - epsg:29903",
		DefaultDestinationSystem: "WGS 84 - epsg:4326",
		BatchCapacity:            1000,
		MaxConcurrency:           1,
		OutputNameFormat:         "converted_{timestamp}_{uuid}.csv",
		LogLevel:                 "info",
	}
}

// Load reads the configuration file at path, layered over the defaults.
// An empty path yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) validate() error {
	if c.BatchCapacity <= 0 {
		return fmt.Errorf("batch_capacity must be positive, got %d", c.BatchCapacity)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
