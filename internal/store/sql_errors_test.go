// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name       string
		err        error
		wantClass  ErrorClassification
		wantDetail string
	}{
		{name: "nil", err: nil, wantClass: Unclassified},
		{name: "plain error", err: errors.New("boom"), wantClass: Unclassified},
		{
			name:       "unique violation",
			err:        pgError(pgerrcode.UniqueViolation, "users_email_key"),
			wantClass:  UniqueViolation,
			wantDetail: "users_email_key",
		},
		{
			name:       "wrapped unique violation",
			err:        fmt.Errorf("%w: %w", ErrExecutingQuery, pgError(pgerrcode.UniqueViolation, "users_username_key")),
			wantClass:  UniqueViolation,
			wantDetail: "users_username_key",
		},
		{
			name:       "foreign key violation",
			err:        pgError(pgerrcode.ForeignKeyViolation, "comments_post_id_fkey"),
			wantClass:  ForeignKeyViolation,
			wantDetail: "comments_post_id_fkey",
		},
		{
			name:      "not null violation",
			err:       pgError(pgerrcode.NotNullViolation, ""),
			wantClass: NotNullViolation,
		},
		{
			name:      "deadlock",
			err:       pgError(pgerrcode.DeadlockDetected, ""),
			wantClass: Unclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, detail := c.Classify(tt.err)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantDetail, detail)
		})
	}
}

func TestClassifyPgError(t *testing.T) {
	assert.Equal(t, UniqueViolation, ClassifyPgError(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, Unclassified, ClassifyPgError(&pgconn.PgError{Code: pgerrcode.SyntaxError}))
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	class, _ := c.Classify(nil)
	assert.Equal(t, Unclassified, class)

	class, _ = c.Classify(errors.New("boom"))
	assert.Equal(t, Unclassified, class)

	class, _ = c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})
	assert.Equal(t, UniqueViolation, class)

	class, _ = c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})
	assert.Equal(t, ForeignKeyViolation, class)

	class, _ = c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull})
	assert.Equal(t, NotNullViolation, class)

	class, _ = c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy})
	assert.Equal(t, Unclassified, class)
}

func TestUserUniqueViolation(t *testing.T) {
	assert.ErrorIs(t, userUniqueViolation("users_email_key"), ErrEmailAlreadyExists)
	assert.ErrorIs(t, userUniqueViolation("UNIQUE constraint failed: users.email"), ErrEmailAlreadyExists)
	assert.ErrorIs(t, userUniqueViolation("users_username_key"), ErrUsernameAlreadyExists)
	assert.ErrorIs(t, userUniqueViolation("UNIQUE constraint failed: users.username"), ErrUsernameAlreadyExists)
	assert.ErrorIs(t, userUniqueViolation("users_pkey"), ErrUserAlreadyExists)
}
