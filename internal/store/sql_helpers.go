// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// now returns the current UTC time truncated to the precision both
// PostgreSQL and SQLite keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nullTime binds t as a nullable timestamp.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// activationFields sets is_active to active. Activating also records
// activated_at unless an earlier activation is already stored.
func activationFields(fields map[string]any, active bool, at time.Time) map[string]any {
	fields["is_active"] = active
	if active {
		fields["activated_at"] = sq.Expr("COALESCE(activated_at, ?)", at)
	}
	return fields
}

// execAffectingOne executes a DML statement and returns notFound when it
// touched no row.
func (db *DB) execAffectingOne(ctx context.Context, query string, args []any, notFound error) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
