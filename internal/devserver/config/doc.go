// Package config loads settings for the development backend: defaults,
// then environment (including .env), then an optional JSON file, then
// command-line flags.
package config
