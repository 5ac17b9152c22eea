package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/siteadmin/internal/buildinfo"
	"github.com/dmitrijs2005/siteadmin/internal/client/cli"
	"github.com/dmitrijs2005/siteadmin/internal/client/config"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
)

// loadConfig turns the panics LoadConfig uses for bad input into an error.
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
	logger := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

	if err := app.Close(); err != nil {
		logger.Error(ctx, "shutdown", "error", err)
	}
}
