package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.PollIntervalMs)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.HelperPath)
	assert.Equal(t, 2*time.Second, cfg.PollInterval())
}

func TestLoad_FromFile(t *testing.T) {
	dir := writeConfig(t, "poll_interval_ms: 500\nformat: json\nhelper_path: /opt/tools/media-control\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.PollIntervalMs)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/opt/tools/media-control", cfg.HelperPath)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval())
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "format: [unterminated\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NOWPLAYING_FORMAT", "yaml")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestPollInterval_Floor(t *testing.T) {
	cfg := Config{PollIntervalMs: 10}
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())

	cfg = Config{PollIntervalMs: 0}
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())
}
