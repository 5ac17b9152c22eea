package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/siteadmin/internal/buildinfo"
	"github.com/dmitrijs2005/siteadmin/internal/devserver"
	"github.com/dmitrijs2005/siteadmin/internal/devserver/config"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
)

func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("config: %v", r)
		}
	}()
	cfg = config.LoadConfig()
	return cfg, cfg.Validate()
}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv, err := devserver.New(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger.Info(ctx, "seeded admin account", "email", cfg.AdminEmail)

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "devserver failed", "error", err)
		os.Exit(1)
	}
}
