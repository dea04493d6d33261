// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new user record.
//
// Error handling:
//   - unique violation on username or email → [ErrUsernameAlreadyExists]
//     or [ErrEmailAlreadyExists];
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.ID == uuid.Nil {
		user.ID = utils.NewID()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	user.ActivatedAt = nil
	if user.IsActive {
		activatedAt := user.CreatedAt
		user.ActivatedAt = &activatedAt
	}

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")

		if class, detail := r.db.errorClassificator.Classify(err); class == UniqueViolation {
			return models.User{}, userUniqueViolation(detail)
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id.String()})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getBy(ctx, sq.Eq{"username": username})
}

func (r *userRepository) getBy(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.getBy").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.getBy").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.List").Msg("error scanning user")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error iterating users")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// Update stores the profile fields of user. A username collision yields
// [ErrUsernameAlreadyExists].
func (r *userRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.UpdatedAt = now()
	query, args, err := buildUpdateUserProfileQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrUserNotFound); err != nil {
		if class, detail := r.db.errorClassificator.Classify(err); class == UniqueViolation {
			return models.User{}, userUniqueViolation(detail)
		}
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.Update").Msg("error updating user")
		}
		return models.User{}, err
	}

	return r.GetByID(ctx, user.ID)
}

// SetActive sets the active flag. The first activation is recorded in
// activated_at and never overwritten.
func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.setFields(ctx, "*userRepository.SetActive", id, activationFields(map[string]any{}, active, now()))
}

func (r *userRepository) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string, active bool) error {
	return r.setFields(ctx, "*userRepository.SetPassword", id, activationFields(map[string]any{
		"password_hash": passwordHash,
	}, active, now()))
}

func (r *userRepository) SetImage(ctx context.Context, id uuid.UUID, image string) error {
	return r.setFields(ctx, "*userRepository.SetImage", id, map[string]any{"image": image})
}

func (r *userRepository) setFields(ctx context.Context, caller string, id uuid.UUID, fields map[string]any) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetUserFieldsQuery(r.db.builder, id, fields, now())
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrUserNotFound); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", caller).Msg("error updating user")
		}
		return err
	}

	return nil
}

// Delete removes the user. Posts and comments of the user are removed by
// the ON DELETE CASCADE foreign keys.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(r.db.builder, models.User{}.TableName(), id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrUserNotFound); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.Delete").Msg("error deleting user")
		}
		return err
	}

	return nil
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var activatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.About,
		&user.Country,
		&user.Image,
		&user.IsActive,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
		&activatedAt,
	)
	if activatedAt.Valid {
		user.ActivatedAt = &activatedAt.Time
	}
	return user, err
}
