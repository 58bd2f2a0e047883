package graphdb

import "context"

type AccessMode int

const (
	Read AccessMode = iota
	Write
)

func (m AccessMode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// Query describes one parameterised Cypher statement. Name is used in
// logs and errors.
type Query struct {
	Name   string
	Cypher string
	Mode   AccessMode
}

// Executor is the query-execution capability the repositories depend on.
// *Store satisfies it; tests provide scripted fakes.
type Executor interface {
	Execute(ctx context.Context, q Query, params map[string]any) ([]Record, error)
}
