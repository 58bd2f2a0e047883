// Package repomanager vends the users repository for the configured store
// and owns the lifetime of the underlying connection.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/config"
	"github.com/dmitrijs2005/gophsocial/internal/graphdb"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/users"
)

type RepositoryManager interface {
	// EnsureSchema applies constraints and indexes. It is idempotent.
	EnsureSchema(ctx context.Context) error
	Users() users.Repository
	Close(ctx context.Context) error
}

// New opens the store selected by cfg.Store.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewInMemoryRepositoryManager(), nil
	case config.StoreNeo4j, "":
		return NewNeo4jRepositoryManager(ctx, graphdb.Options{
			Endpoint:     cfg.Endpoint,
			User:         cfg.User,
			Password:     cfg.Password,
			DatabaseName: cfg.DatabaseName,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
