package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 5*time.Second, cfg.PostRedirect())
	assert.Greater(t, cfg.RequestTimeout(), cfg.APITimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestFromViper_environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("API_URL", "https://fore.example.com/ ")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("POST_REDIRECT_SECONDS", "0")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://fore.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, time.Duration(0), cfg.PostRedirect())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromViper_invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port too big":     {"PORT": "70000"},
		"relative api url": {"API_URL": "localhost"},
		"empty api url":    {"API_URL": " "},
		"zero timeout":     {"API_TIMEOUT": "0s"},
		"negative ttl":     {"SESSION_TTL": "-1h"},
		"bad log level":    {"LOG_LEVEL": "verbose"},
		"bad log format":   {"LOG_FORMAT": "jsno"},
		"negative redis":   {"REDIS_DB": "-1"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := fromViper(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestLoad_configFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "port: 4000\napi_url: http://backend:8000\nsession_ttl: 2h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=warn\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("LOG_LEVEL")
	})

	// Environment wins over the file
	t.Setenv("PORT", "4001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4001, cfg.Port)
	assert.Equal(t, "http://backend:8000", cfg.APIURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "warn", cfg.LogLevel)
}
