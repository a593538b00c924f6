package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1000, cfg.BatchCapacity)
	assert.Equal(t, "TM75 / Irish Grid - epsg:29903", cfg.DefaultSourceSystem)
	assert.Equal(t, "WGS 84 - epsg:4326", cfg.DefaultDestinationSystem)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
batch_capacity: 200
max_concurrency: 4
log_level: debug
default_source_system: "WGS 84 - epsg:4326"
output_dir: /tmp/out
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.BatchCapacity)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "WGS 84 - epsg:4326", cfg.DefaultSourceSystem)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "WGS 84 - epsg:4326", cfg.DefaultDestinationSystem)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero capacity", content: "batch_capacity: 0"},
		{name: "negative concurrency", content: "max_concurrency: -2"},
		{name: "unknown log level", content: "log_level: chatty"},
		{name: "not yaml", content: "::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
