// Package graphdb wraps a Neo4j driver behind a small query-execution
// contract used by the repositories:
//
//	rows, err := store.Execute(ctx, graphdb.Query{Name: "find_user", Cypher: q}, params)
//
// A Query carries its Cypher text and access mode; rows come back as Record
// maps with typed accessors. Every driver error is classified into
// common.ErrConnection (store unreachable, fatal) or common.ErrQuery.
//
// Each Execute call runs as a single auto-committed transaction, so one
// Cypher statement is one atomic unit.
package graphdb
