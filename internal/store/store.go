// Package store implements the PostgreSQL-backed data stores for
// categories, tags, posts, and users. Stores own validation and the
// invariants around deletion guards, tag sync, and the post lifecycle;
// failures are reported through the typed errors in the models package.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation, optionally narrowed to a constraint whose name contains one
// of the given fragments.
func uniqueViolation(err error, constraintContains ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	if len(constraintContains) == 0 {
		return true
	}
	for _, frag := range constraintContains {
		if strings.Contains(pgErr.ConstraintName, frag) {
			return true
		}
	}
	return false
}

// inPlaceholders returns a comma-separated placeholder list starting at
// position start, e.g. inPlaceholders(2, 3) → "$2, $3, $4".
func inPlaceholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
