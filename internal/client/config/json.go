package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/siteadmin/internal/flagx"
	"github.com/dmitrijs2005/siteadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "15s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	RefreshTimeout  timex.Duration `json:"refresh_timeout"`
	TokenStore      string         `json:"token_store"`
	DatabasePath    string         `json:"database_path"`
	RedisAddr       string         `json:"redis_addr"`
	TokenPassphrase string         `json:"token_passphrase"`
	LogLevel        string         `json:"log_level"`
	LogBackend      string         `json:"log_backend"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.TokenStore, jc.TokenStore)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.RedisAddr, jc.RedisAddr)
	overlay(&cfg.TokenPassphrase, jc.TokenPassphrase)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogBackend, jc.LogBackend)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshTimeout.Duration > 0 {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
