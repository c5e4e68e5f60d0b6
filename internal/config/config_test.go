package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Selection.MaxSize)
	assert.Equal(t, 1000, cfg.Selection.DebounceMS)
	assert.Equal(t, time.Second, cfg.Selection.DebounceWindow())
	assert.Equal(t, "franchises.db", cfg.Storage.Database)
	assert.Equal(t, "selection.json", cfg.Storage.SelectionFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Selection.MaxSize)
}

func TestLoad_OverridesMergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `
selection:
  max_size: 4
storage:
  database: /tmp/custom.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Selection.MaxSize)
	assert.Equal(t, 1000, cfg.Selection.DebounceMS, "unset fields keep defaults")
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.Database)
	assert.Equal(t, "selection.json", cfg.Storage.SelectionFile)
}

func TestLoad_FullOverride(t *testing.T) {
	path := writeConfig(t, `
selection:
  max_size: 25
  debounce_ms: 250
storage:
  database: data.db
  selection_file: sel.json
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Selection.MaxSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Selection.DebounceWindow())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"max_size zero", "selection:\n  max_size: 0\n"},
		{"max_size too large", "selection:\n  max_size: 100\n"},
		{"negative debounce", "selection:\n  debounce_ms: -1\n"},
		{"empty database path", "storage:\n  database: \"\"\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "selection:\n  max_franchises: 5\n"))
	require.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "selection: [unclosed"))
	require.Error(t, err)
}
