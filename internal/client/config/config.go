package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Token store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the SiteAdmin CLI.
//
// Units: RequestTimeout and RefreshTimeout are time.Duration values.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	RefreshTimeout time.Duration

	TokenStore      string
	DatabasePath    string
	RedisAddr       string
	TokenPassphrase string

	LogLevel   string
	LogBackend string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.RequestTimeout = 30 * time.Second
	c.RefreshTimeout = 15 * time.Second
	c.TokenStore = StoreSQLite
	c.DatabasePath = "siteadmin.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q must be absolute", ErrInvalidConfig, c.APIBaseURL)
	}
	switch c.TokenStore {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("%w: unknown token store %q", ErrInvalidConfig, c.TokenStore)
	}
	if c.RequestTimeout <= 0 || c.RefreshTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
