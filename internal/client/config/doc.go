// Package config loads runtime configuration for the SiteAdmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including a .env file in the working
//     directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-r int      token refresh timeout (seconds)
//	-s string   token store: sqlite | redis | memory
//	-d string   SQLite database path
//
// # JSON schema
//
// Timeouts use timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:3000/api",
//	  "request_timeout": "30s",
//	  "refresh_timeout": "15s",
//	  "token_store": "sqlite",
//	  "database_path": "siteadmin.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "token_passphrase": "",
//	  "log_level": "warn",
//	  "log_backend": "slog"
//	}
package config
