package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/siteadmin/internal/flagx"
	"github.com/dmitrijs2005/siteadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Addr            string         `json:"addr"`
	JWTSecret       string         `json:"jwt_secret"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl"`
	AdminName       string         `json:"admin_name"`
	AdminEmail      string         `json:"admin_email"`
	AdminPassword   string         `json:"admin_password"`
	Seed            *bool          `json:"seed"`
	LogLevel        string         `json:"log_level"`
	LogBackend      string         `json:"log_backend"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.Addr, jc.Addr)
	overlay(&cfg.JWTSecret, jc.JWTSecret)
	overlay(&cfg.AdminName, jc.AdminName)
	overlay(&cfg.AdminEmail, jc.AdminEmail)
	overlay(&cfg.AdminPassword, jc.AdminPassword)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogBackend, jc.LogBackend)
	if jc.AccessTokenTTL.Duration > 0 {
		cfg.AccessTokenTTL = jc.AccessTokenTTL.Duration
	}
	if jc.RefreshTokenTTL.Duration > 0 {
		cfg.RefreshTokenTTL = jc.RefreshTokenTTL.Duration
	}
	if jc.Seed != nil {
		cfg.Seed = *jc.Seed
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
