package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHome redirects the home directory so the loader's allowed-path check
// points at a throwaway config dir.
func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "chatto")
	require.NoError(t, os.MkdirAll(dir, 0700))
	return dir
}

func writeConfig(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestLoadDefaults(t *testing.T) {
	testHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := testHome(t)
	path := writeConfig(t, dir, `
api:
  base_url: https://api.chatto.app
  timeout: 10s
log:
  level: debug
  format: console
`, 0600)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.chatto.app", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := testHome(t)
	path := writeConfig(t, dir, "api:\n  base_url: https://file.example\n", 0600)

	t.Setenv("CHATTO_API_BASE_URL", "https://env.example")
	t.Setenv("CHATTO_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejections(t *testing.T) {
	t.Run("world-readable file", func(t *testing.T) {
		dir := testHome(t)
		path := writeConfig(t, dir, "api:\n  base_url: https://api.chatto.app\n", 0644)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insecure config file permissions")
	})

	t.Run("file outside the allowed directories", func(t *testing.T) {
		testHome(t)
		outside := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(outside, []byte("{}"), 0600))

		_, err := Load(outside)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path validation failed")
	})

	t.Run("bad base url scheme", func(t *testing.T) {
		dir := testHome(t)
		path := writeConfig(t, dir, "api:\n  base_url: ftp://wrong\n", 0600)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be http or https")
	})

	t.Run("bad log format", func(t *testing.T) {
		dir := testHome(t)
		path := writeConfig(t, dir, "log:\n  format: xml\n", 0600)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("csrf-value")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "csrf-value", s.Value())
	assert.True(t, s.IsSet())

	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"[REDACTED]"`, string(out))

	var empty Secret
	assert.Equal(t, "", empty.String())
	assert.False(t, empty.IsSet())
}
