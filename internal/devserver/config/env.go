package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAddr            = "SITEADMIN_DEV_ADDR"
	EnvJWTSecret       = "SITEADMIN_DEV_JWT_SECRET"
	EnvAccessTokenTTL  = "SITEADMIN_DEV_ACCESS_TTL"
	EnvRefreshTokenTTL = "SITEADMIN_DEV_REFRESH_TTL"
	EnvAdminName       = "SITEADMIN_DEV_ADMIN_NAME"
	EnvAdminEmail      = "SITEADMIN_DEV_ADMIN_EMAIL"
	EnvAdminPassword   = "SITEADMIN_DEV_ADMIN_PASSWORD"
	EnvSeed            = "SITEADMIN_DEV_SEED"
	EnvLogLevel        = "SITEADMIN_DEV_LOG_LEVEL"
	EnvLogBackend      = "SITEADMIN_DEV_LOG_BACKEND"
)

// parseEnv overlays Config with environment variables, loading .env first
// when present. Panics on malformed durations or booleans.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.Addr, EnvAddr)
	setString(&cfg.JWTSecret, EnvJWTSecret)
	setDuration(&cfg.AccessTokenTTL, EnvAccessTokenTTL)
	setDuration(&cfg.RefreshTokenTTL, EnvRefreshTokenTTL)
	setString(&cfg.AdminName, EnvAdminName)
	setString(&cfg.AdminEmail, EnvAdminEmail)
	setString(&cfg.AdminPassword, EnvAdminPassword)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.LogBackend, EnvLogBackend)

	if v := os.Getenv(EnvSeed); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvSeed, err))
		}
		cfg.Seed = b
	}
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
