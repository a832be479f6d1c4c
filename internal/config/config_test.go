package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.Enrichment.BaseURL)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Enrichment.APIKeyEnv)
	assert.Equal(t, "gemini-pro", cfg.Enrichment.Model)
	assert.Zero(t, cfg.Enrichment.TimeoutSecs)
	assert.Equal(t, "selectly.log", cfg.Log.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enrichment:\n  model: gemini-1.5-flash\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", cfg.Enrichment.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Enrichment.APIKeyEnv)
	assert.Equal(t, "selectly.log", cfg.Log.Path)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t-broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Enrichment.TimeoutSecs = 45
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
