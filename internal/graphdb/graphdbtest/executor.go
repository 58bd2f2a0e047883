// Package graphdbtest provides a scripted graphdb.Executor for repository
// tests, in the spirit of sqlmock: queue the queries you expect together
// with the rows they return, run the code under test, then check that
// every expectation was consumed.
package graphdbtest

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/dmitrijs2005/gophsocial/internal/graphdb"
)

// Call is one Execute invocation seen by the Executor.
type Call struct {
	Query  graphdb.Query
	Params map[string]any
}

type expectation struct {
	name   string
	cypher *regexp.Regexp
	params map[string]any
	rows   []graphdb.Record
	err    error
}

// Expectation is returned by Expect so the reply can be configured.
type Expectation struct {
	e *expectation
}

// WithCypher additionally requires the Cypher text to match pattern.
func (x *Expectation) WithCypher(pattern string) *Expectation {
	x.e.cypher = regexp.MustCompile(pattern)
	return x
}

// WithParams requires every given key to be present with an equal value.
func (x *Expectation) WithParams(params map[string]any) *Expectation {
	x.e.params = params
	return x
}

// WillReturnRows sets the rows returned for the query.
func (x *Expectation) WillReturnRows(rows ...graphdb.Record) *Expectation {
	x.e.rows = rows
	return x
}

// WillReturnError makes the query fail with err.
func (x *Expectation) WillReturnError(err error) *Expectation {
	x.e.err = err
	return x
}

// Executor replays expectations in order.
type Executor struct {
	mu       sync.Mutex
	expected []*expectation
	calls    []Call
}

func New() *Executor {
	return &Executor{}
}

// Expect queues a query identified by its graphdb.Query name.
func (m *Executor) Expect(name string) *Expectation {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &expectation{name: name}
	m.expected = append(m.expected, e)
	return &Expectation{e: e}
}

func (m *Executor) Execute(_ context.Context, q graphdb.Query, params map[string]any) ([]graphdb.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Query: q, Params: params})

	if len(m.expected) == 0 {
		return nil, fmt.Errorf("graphdbtest: unexpected query %q", q.Name)
	}
	e := m.expected[0]
	m.expected = m.expected[1:]

	if e.name != q.Name {
		return nil, fmt.Errorf("graphdbtest: expected query %q, got %q", e.name, q.Name)
	}
	if e.cypher != nil && !e.cypher.MatchString(q.Cypher) {
		return nil, fmt.Errorf("graphdbtest: query %q cypher does not match %s", q.Name, e.cypher)
	}
	for k, want := range e.params {
		got, ok := params[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return nil, fmt.Errorf("graphdbtest: query %q param %s = %v, want %v", q.Name, k, got, want)
		}
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.rows, nil
}

// Calls returns every Execute invocation so far.
func (m *Executor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// ExpectationsWereMet returns an error if queued queries were never run.
func (m *Executor) ExpectationsWereMet() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.expected) > 0 {
		return fmt.Errorf("graphdbtest: %d expected queries not run, next is %q", len(m.expected), m.expected[0].name)
	}
	return nil
}
