package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophsocial/internal/graphdb"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/users"
)

// store is what the manager needs from graphdb.Store.
type store interface {
	graphdb.Executor
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

// newStore is a seam so tests can substitute the graph connection.
var newStore = func(opts graphdb.Options, logger logging.Logger) store {
	return graphdb.NewStore(opts, logger)
}

type Neo4jRepositoryManager struct {
	store  store
	logger logging.Logger
	users  users.Repository
}

func (m *Neo4jRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *Neo4jRepositoryManager) EnsureSchema(ctx context.Context) error {
	return graphdb.EnsureSchema(ctx, m.store, m.logger)
}

func (m *Neo4jRepositoryManager) Close(ctx context.Context) error {
	return m.store.Close(ctx)
}

// NewNeo4jRepositoryManager connects to the graph. The returned error wraps
// common.ErrConnection when the server cannot be reached.
func NewNeo4jRepositoryManager(ctx context.Context, opts graphdb.Options, logger logging.Logger) (RepositoryManager, error) {
	s := newStore(opts, logger)
	if err := s.Open(ctx); err != nil {
		return nil, err
	}

	return &Neo4jRepositoryManager{
		store:  s,
		logger: logger,
		users:  users.NewNeo4jRepository(s),
	}, nil
}
