package graphdb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

// ConstraintError reports a uniqueness constraint violation. It matches
// common.ErrQuery under errors.Is; Property names the offending key when the
// server message mentions one of the User keys.
type ConstraintError struct {
	Property string
	Msg      string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation on %q: %s", e.Property, e.Msg)
}

func (e *ConstraintError) Unwrap() error { return common.ErrQuery }

// classify maps a driver error onto the store error taxonomy while keeping
// the driver message.
func classify(err error) error {
	var nerr *neo4j.Neo4jError
	switch {
	case neo4j.IsConnectivityError(err):
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	case errors.As(err, &nerr):
		if nerr.Code == constraintViolationCode {
			return &ConstraintError{Property: constraintProperty(nerr.Msg), Msg: nerr.Msg}
		}
		return fmt.Errorf("%w: %s: %s", common.ErrQuery, nerr.Code, nerr.Msg)
	default:
		return fmt.Errorf("%w: %v", common.ErrQuery, err)
	}
}

func constraintProperty(msg string) string {
	for _, p := range []string{PropHandle, PropEmail} {
		if strings.Contains(msg, "`"+p+"`") || strings.Contains(msg, "'"+p+"'") || strings.Contains(msg, p+" =") {
			return p
		}
	}
	return ""
}
