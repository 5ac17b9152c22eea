package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL      = "SITEADMIN_API_URL"
	EnvRequestTimeout  = "SITEADMIN_REQUEST_TIMEOUT"
	EnvRefreshTimeout  = "SITEADMIN_REFRESH_TIMEOUT"
	EnvTokenStore      = "SITEADMIN_TOKEN_STORE"
	EnvDatabasePath    = "SITEADMIN_DB_PATH"
	EnvRedisAddr       = "SITEADMIN_REDIS_ADDR"
	EnvTokenPassphrase = "SITEADMIN_TOKEN_PASSPHRASE"
	EnvLogLevel        = "SITEADMIN_LOG_LEVEL"
	EnvLogBackend      = "SITEADMIN_LOG_BACKEND"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first if it exists; variables already set in
// the process environment win over it. Unset variables leave the field
// alone. Panics on a malformed duration.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.APIBaseURL, EnvAPIBaseURL)
	setDuration(&cfg.RequestTimeout, EnvRequestTimeout)
	setDuration(&cfg.RefreshTimeout, EnvRefreshTimeout)
	setString(&cfg.TokenStore, EnvTokenStore)
	setString(&cfg.DatabasePath, EnvDatabasePath)
	setString(&cfg.RedisAddr, EnvRedisAddr)
	setString(&cfg.TokenPassphrase, EnvTokenPassphrase)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.LogBackend, EnvLogBackend)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = d
}
