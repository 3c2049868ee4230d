package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/moneyball/internal/clients/backend"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MONEYBALL_API_URL", "MONEYBALL_PORT", "MONEYBALL_DATA_DIR", "MONEYBALL_SESSION_SECRET",
		"MONEYBALL_REQUEST_TIMEOUT", "LOG_LEVEL", "DEV_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("MONEYBALL_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, backend.DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Empty(t, cfg.SessionSecret)
	assert.Equal(t, filepath.Join(dir, "session.db"), cfg.SessionDBPath())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("MONEYBALL_DATA_DIR", dir)
	t.Setenv("MONEYBALL_API_URL", "http://localhost:9090/api")
	t.Setenv("MONEYBALL_PORT", "3000")
	t.Setenv("MONEYBALL_REQUEST_TIMEOUT", "5")
	t.Setenv("MONEYBALL_SESSION_SECRET", strings.Repeat("k", 40))
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090/api", cfg.APIURL)
	assert.Equal(t, dir, cfg.DataDir)
	assert.DirExists(t, dir)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Len(t, cfg.SessionSecret, 40)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONEYBALL_DATA_DIR", t.TempDir())
	t.Setenv("MONEYBALL_PORT", "eighty")
	t.Setenv("DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestLoad_DevModeGeneratesSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONEYBALL_DATA_DIR", t.TempDir())
	t.Setenv("DEV_MODE", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.SessionSecret, MinSecretLength)
	assert.NoError(t, cfg.ValidateServer())
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIURL:         "https://example.com/api",
		SessionSecret:  []byte(strings.Repeat("s", MinSecretLength)),
		RequestTimeout: time.Second,
		Port:           8080,
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
		server    bool
	}{
		{"valid", func(c *Config) {}, false, true},
		{"bad scheme", func(c *Config) { c.APIURL = "ftp://example.com" }, true, false},
		{"missing host", func(c *Config) { c.APIURL = "http:///api" }, true, false},
		{"unparseable", func(c *Config) { c.APIURL = "http://[::1" }, true, false},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true, false},
		{"short secret", func(c *Config) { c.SessionSecret = []byte("short") }, true, true},
		{"short secret in dev", func(c *Config) { c.SessionSecret = nil; c.DevMode = true }, false, true},
		{"bad port", func(c *Config) { c.Port = 70000 }, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			var err error
			if tt.server {
				err = cfg.ValidateServer()
			} else {
				err = cfg.Validate()
			}
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
