package graphdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// Persisted schema names referenced outside the Cypher text. They are
// shared with existing databases and must not change.
const (
	LabelUser   = "User"
	PropName    = "name"
	PropHandle  = "screen_name"
	PropEmail   = "email"
	PropFollows = "followers_count"
)

func uniqueConstraint(name, prop string) Query {
	return Query{Name: name, Mode: Write, Cypher: fmt.Sprintf(
		"CREATE CONSTRAINT %s IF NOT EXISTS FOR (u:%s) REQUIRE u.%s IS UNIQUE", name, LabelUser, prop)}
}

func rangeIndex(name, prop string) Query {
	return Query{Name: name, Mode: Write, Cypher: fmt.Sprintf(
		"CREATE INDEX %s IF NOT EXISTS FOR (u:%s) ON (u.%s)", name, LabelUser, prop)}
}

// SchemaStatements are the idempotent constraint and index definitions for
// the User graph.
var SchemaStatements = []Query{
	uniqueConstraint("user_screen_name_unique", PropHandle),
	uniqueConstraint("user_email_unique", PropEmail),
	rangeIndex("user_name_idx", PropName),
	rangeIndex("user_followers_idx", PropFollows),
}

// EnsureSchema runs every SchemaStatements entry. A failing statement is
// logged and the rest still run; the failures are returned joined. A
// connection failure aborts immediately.
func EnsureSchema(ctx context.Context, exec Executor, logger logging.Logger) error {
	var errs []error
	for _, q := range SchemaStatements {
		if _, err := exec.Execute(ctx, q, nil); err != nil {
			if errors.Is(err, common.ErrConnection) {
				return err
			}
			logger.Warn(ctx, "schema statement failed", "statement", q.Name, "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Info(ctx, "schema statement applied", "statement", q.Name)
	}
	return errors.Join(errs...)
}
