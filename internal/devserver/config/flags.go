package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (e.g., ":3000")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, seconds
//	-r int      refresh token validity, minutes
//	-e string   seeded admin email
//	-p string   seeded admin password
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-r", "-e", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "secret key")
	accessTTL := fs.Int("t", int(cfg.AccessTokenTTL.Seconds()), "access token validity (in seconds)")
	refreshTTL := fs.Int("r", int(cfg.RefreshTokenTTL.Minutes()), "refresh token validity (in minutes)")
	fs.StringVar(&cfg.AdminEmail, "e", cfg.AdminEmail, "admin email")
	fs.StringVar(&cfg.AdminPassword, "p", cfg.AdminPassword, "admin password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenTTL = time.Duration(*accessTTL) * time.Second
	cfg.RefreshTokenTTL = time.Duration(*refreshTTL) * time.Minute
}
