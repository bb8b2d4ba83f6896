package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	assert.Equal(t, ListPathRead, cfg.ListPath)
	assert.Equal(t, 8080, cfg.DevServer.Port)
	assert.Equal(t, 30, cfg.DevServer.TokenTTLMinutes)
	assert.True(t, cfg.Color)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bookcat.yml")

	original := DefaultConfig()
	original.BaseURL = "https://catalog.example.com"
	original.ListPath = ListPathLegacy
	original.Color = false
	original.DevServer.Port = 9090

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.BaseURL, loaded.BaseURL)
	assert.Equal(t, original.ListPath, loaded.ListPath)
	assert.False(t, loaded.Color)
	assert.Equal(t, 9090, loaded.DevServer.Port)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(filepath.Join(dir, "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().BaseURL, cfg.BaseURL)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("BOOKCAT_BASE_URL", "http://books.internal:8000")
	t.Setenv("BOOKCAT_DEVSERVER__PORT", "9999")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://books.internal:8000", loaded.BaseURL)
	assert.Equal(t, 9999, loaded.DevServer.Port)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".bookcat.yml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOOKCAT_LIST_PATH=/books/books/books/\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BOOKCAT_LIST_PATH") })

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ListPathLegacy, loaded.ListPath)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "base_url", envKey("BOOKCAT_BASE_URL"))
	assert.Equal(t, "devserver.secret_key", envKey("BOOKCAT_DEVSERVER__SECRET_KEY"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"ftp scheme", func(c *Config) { c.BaseURL = "ftp://example.com" }, true},
		{"missing host", func(c *Config) { c.BaseURL = "http://" }, true},
		{"relative list path", func(c *Config) { c.ListPath = "books/read/books/" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"port out of range", func(c *Config) { c.DevServer.Port = 70000 }, true},
		{"zero token ttl", func(c *Config) { c.DevServer.TokenTTLMinutes = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
