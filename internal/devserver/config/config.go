package config

import (
	"errors"
	"fmt"
	"net/mail"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: listen address; routes are served under /api.
//   - JWTSecret: HMAC secret for HS256 access tokens. When empty a random
//     secret is generated on start, so tokens do not survive a restart.
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes. The access token is
//     kept short so the client's refresh path gets exercised.
//   - AdminName / AdminEmail / AdminPassword: the account seeded on start.
//   - Seed: also load a handful of demo content items.
type Config struct {
	Addr            string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string
	Seed          bool

	LogLevel   string
	LogBackend string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and must not leave a laptop.
func (c *Config) LoadDefaults() {
	c.Addr = ":3000"
	c.AccessTokenTTL = 1 * time.Minute
	c.RefreshTokenTTL = 24 * time.Hour
	c.AdminName = "Admin"
	c.AdminEmail = "admin@example.com"
	c.AdminPassword = "admin12345"
	c.Seed = true
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) Validate() error {
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidConfig)
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("%w: refresh token must outlive the access token", ErrInvalidConfig)
	}
	if _, err := mail.ParseAddress(c.AdminEmail); err != nil {
		return fmt.Errorf("%w: admin email: %w", ErrInvalidConfig, err)
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("%w: admin password is empty", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
