package graphdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const DefaultDatabase = "neo4j"

// Options are the recognised connection settings.
type Options struct {
	Endpoint     string
	User         string
	Password     string
	DatabaseName string
}

// newDriver and runQuery are seams over the driver package so tests can
// exercise Store without a server.
var newDriver = func(target, user, password string) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(target, neo4j.BasicAuth(user, password, ""))
}

var runQuery = func(ctx context.Context, d neo4j.DriverWithContext, cypher string, params map[string]any,
	opts ...neo4j.ExecuteQueryConfigurationOption) (*neo4j.EagerResult, error) {
	return neo4j.ExecuteQuery(ctx, d, cypher, params, neo4j.EagerResultTransformer, opts...)
}

// Store is the Neo4j-backed Executor.
type Store struct {
	opts   Options
	logger logging.Logger

	mu     sync.RWMutex
	driver neo4j.DriverWithContext
}

// NewStore returns an unopened Store. An empty DatabaseName means
// DefaultDatabase.
func NewStore(opts Options, logger logging.Logger) *Store {
	if opts.DatabaseName == "" {
		opts.DatabaseName = DefaultDatabase
	}
	return &Store{opts: opts, logger: logger.With("component", "graphdb", "database", opts.DatabaseName)}
}

// Open creates the driver and verifies that the server is reachable.
// Failures are reported as common.ErrConnection.
func (s *Store) Open(ctx context.Context) error {
	d, err := newDriver(s.opts.Endpoint, s.opts.User, s.opts.Password)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrConnection, s.opts.Endpoint, err)
	}

	if err := d.VerifyConnectivity(ctx); err != nil {
		_ = d.Close(ctx)
		return fmt.Errorf("%w: %s: %v", common.ErrConnection, s.opts.Endpoint, err)
	}

	s.mu.Lock()
	s.driver = d
	s.mu.Unlock()

	s.logger.Info(ctx, "connected to graph database", "endpoint", s.opts.Endpoint)
	return nil
}

// Close releases the driver. Closing an unopened Store is a no-op.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	d := s.driver
	s.driver = nil
	s.mu.Unlock()

	if d == nil {
		return nil
	}
	return d.Close(ctx)
}

// Execute runs q with params and returns every row eagerly.
func (s *Store) Execute(ctx context.Context, q Query, params map[string]any) ([]Record, error) {
	s.mu.RLock()
	d := s.driver
	s.mu.RUnlock()

	if d == nil {
		return nil, fmt.Errorf("%w: %s: driver not initialized, call Open first", common.ErrConnection, q.Name)
	}

	if params == nil {
		params = map[string]any{}
	}

	routing := neo4j.ExecuteQueryWithReadersRouting()
	if q.Mode == Write {
		routing = neo4j.ExecuteQueryWithWritersRouting()
	}

	res, err := runQuery(ctx, d, q.Cypher, params, neo4j.ExecuteQueryWithDatabase(s.opts.DatabaseName), routing)
	if err != nil {
		cerr := classify(err)
		s.logger.Debug(ctx, "query failed", "query", q.Name, "mode", q.Mode.String(), "error", err)
		return nil, fmt.Errorf("%s: %w", q.Name, cerr)
	}

	rows := make([]Record, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, Record(rec.AsMap()))
	}

	s.logger.Debug(ctx, "query executed", "query", q.Name, "rows", len(rows))
	return rows, nil
}
