package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/buildinfo"
	"github.com/dmitrijs2005/gophsocial/internal/cli"
	"github.com/dmitrijs2005/gophsocial/internal/config"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogBackend, os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "session terminated", "error", err)
		os.Exit(1)
	}
}
