// Command initdb creates the GophSocial constraints and indexes. It accepts
// the same configuration sources as the CLI and is safe to run repeatedly.
package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/config"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/repomanager"
)

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogBackend, os.Stderr, cfg.LogLevel)

	if err := run(ctx, cfg, logger); err != nil {
		os.Exit(1)
	}
}

// run connects, applies the schema and closes the store exactly once.
func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	repos, err := newRepositoryManager(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "connect failed", "error", err)
		return err
	}

	schemaErr := repos.EnsureSchema(ctx)
	if err := repos.Close(ctx); err != nil {
		logger.Warn(ctx, "closing store", "error", err)
	}

	if schemaErr != nil {
		logger.Error(ctx, "schema setup incomplete", "error", schemaErr)
		return schemaErr
	}
	logger.Info(ctx, "schema ready", "database", cfg.DatabaseName)
	return nil
}
