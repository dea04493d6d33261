// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// commentRepository is the SQL implementation of [CommentRepository].
type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCommentRepository constructs a [CommentRepository] backed by db.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *commentRepository) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if comment.ID == uuid.Nil {
		comment.ID = utils.NewID()
	}
	comment.CreatedAt = now()
	comment.UpdatedAt = comment.CreatedAt

	query, args, err := buildInsertCommentQuery(r.db.builder, comment)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.Create").Msg("error building query")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*commentRepository.Create").Msg("error inserting comment")

		// the post may have been deleted since the caller resolved it
		if class, _ := r.db.errorClassificator.Classify(err); class == ForeignKeyViolation {
			return models.Comment{}, ErrPostNotFound
		}
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return comment, nil
}

func (r *commentRepository) GetByID(ctx context.Context, postID, id uuid.UUID) (models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCommentQuery(r.db.builder, postID, id)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.GetByID").Msg("error building query")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, ErrCommentNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.GetByID").Msg("error scanning comment")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCommentsQuery(r.db.builder, postID)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListByPost").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListByPost").Msg("error querying comments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, scanErr := scanComment(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*commentRepository.ListByPost").Msg("error scanning comment")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*commentRepository.ListByPost").Msg("error iterating comments")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	comment.UpdatedAt = now()
	query, args, err := buildUpdateCommentQuery(r.db.builder, comment)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.Update").Msg("error building query")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrCommentNotFound); err != nil {
		if !errors.Is(err, ErrCommentNotFound) {
			log.Err(err).Str("func", "*commentRepository.Update").Msg("error updating comment")
		}
		return models.Comment{}, err
	}

	return r.GetByID(ctx, comment.PostID, comment.ID)
}

func (r *commentRepository) Delete(ctx context.Context, postID, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCommentQuery(r.db.builder, postID, id)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrCommentNotFound); err != nil {
		if !errors.Is(err, ErrCommentNotFound) {
			log.Err(err).Str("func", "*commentRepository.Delete").Msg("error deleting comment")
		}
		return err
	}

	return nil
}

func scanComment(row rowScanner) (models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID,
		&comment.AuthorID,
		&comment.PostID,
		&comment.AuthorUsername,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	return comment, err
}
