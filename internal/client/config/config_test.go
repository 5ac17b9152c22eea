package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000/api", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 15*time.Second, c.RefreshTimeout)
	assert.Equal(t, StoreSQLite, c.TokenStore)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_Layering(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://json:1/api",
		"refresh_timeout": "7s",
		"token_store":     "redis",
	})
	t.Setenv(EnvAPIBaseURL, "http://env:1/api")
	t.Setenv(EnvRefreshTimeout, "3s")
	t.Setenv(EnvLogLevel, "debug")

	os.Args = []string{"cmd", "-c", path, "-a", "http://flag:1/api"}
	cfg := LoadConfig()

	assert.Equal(t, "http://flag:1/api", cfg.APIBaseURL, "flag beats json and env")
	assert.Equal(t, 7*time.Second, cfg.RefreshTimeout, "json beats env")
	assert.Equal(t, "redis", cfg.TokenStore)
	assert.Equal(t, "debug", cfg.LogLevel, "env beats defaults")
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.APIBaseURL = "/api" }},
		{"unknown store", func(c *Config) { c.TokenStore = "etcd" }},
		{"zero timeout", func(c *Config) { c.RefreshTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
