// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It tells repositories which integrity
// constraint, if any, a failed statement violated.
type ErrorClassification int

const (
	// Unclassified is returned for nil errors and for any error that is not
	// an integrity constraint violation.
	Unclassified ErrorClassification = iota

	// UniqueViolation indicates a unique or primary key constraint failure.
	UniqueViolation

	// ForeignKeyViolation indicates that a referenced row does not exist.
	ForeignKeyViolation

	// NotNullViolation indicates a missing value for a NOT NULL column.
	NotNullViolation
)

// ErrorClassificator inspects driver errors. Detail carries the constraint
// name (PostgreSQL) or the driver message naming the column (SQLite), so
// repositories can tell which unique key collided.
type ErrorClassificator interface {
	Classify(err error) (class ErrorClassification, detail string)
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) (ErrorClassification, string) {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return Unclassified, ""
	}

	return ClassifyPgError(pgErr), pgErr.ConstraintName
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code (class 23, integrity constraint violations).
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	}

	return Unclassified
}

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite using the
// extended result codes reported by go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. The detail is the driver message,
// e.g. "UNIQUE constraint failed: users.email".
func (c *SQLiteErrorClassifier) Classify(err error) (ErrorClassification, string) {
	var sqliteErr sqlite3.Error
	if err == nil || !errors.As(err, &sqliteErr) {
		return Unclassified, ""
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation, sqliteErr.Error()
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolation, sqliteErr.Error()
	case sqlite3.ErrConstraintNotNull:
		return NotNullViolation, sqliteErr.Error()
	}

	return Unclassified, ""
}

// userUniqueViolation translates the detail of a unique violation on the
// users table into the matching per-column sentinel.
func userUniqueViolation(detail string) error {
	switch {
	case strings.Contains(detail, "email"):
		return ErrEmailAlreadyExists
	case strings.Contains(detail, "username"):
		return ErrUsernameAlreadyExists
	default:
		return ErrUserAlreadyExists
	}
}
