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

// postRepository is the SQL implementation of [PostRepository]. Reads join
// the author's username and collect the ids of the post's comments.
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by db.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts post. A reference to a missing author is reported as
// [ErrUserNotFound].
func (r *postRepository) Create(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	if post.ID == uuid.Nil {
		post.ID = utils.NewID()
	}
	post.CreatedAt = now()
	post.UpdatedAt = post.CreatedAt
	post.CommentIDs = []uuid.UUID{}

	query, args, err := buildInsertPostQuery(r.db.builder, post)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.Create").Msg("error building query")
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*postRepository.Create").Msg("error inserting post")

		if class, _ := r.db.errorClassificator.Classify(err); class == ForeignKeyViolation {
			return models.Post{}, ErrUserNotFound
		}
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPostQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.GetByID").Msg("error building query")
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*postRepository.GetByID").Msg("error scanning post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	posts := []models.Post{post}
	if err = r.attachCommentIDs(ctx, posts); err != nil {
		return models.Post{}, err
	}

	return posts[0], nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPostsQuery(r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.List").Msg("error querying posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*postRepository.List").Msg("error scanning post")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*postRepository.List").Msg("error iterating posts")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	if err = r.attachCommentIDs(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// attachCommentIDs fills CommentIDs of every post with a single query.
func (r *postRepository) attachCommentIDs(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	ids := make([]uuid.UUID, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		posts[i].CommentIDs = []uuid.UUID{}
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
	}

	query, args, err := buildSelectCommentIDsQuery(r.db.builder, ids)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.attachCommentIDs").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.attachCommentIDs").Msg("error querying comment ids")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var commentID, postID uuid.UUID
		if err = rows.Scan(&commentID, &postID); err != nil {
			log.Err(err).Str("func", "*postRepository.attachCommentIDs").Msg("error scanning comment id")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[postID]; ok {
			posts[i].CommentIDs = append(posts[i].CommentIDs, commentID)
		}
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*postRepository.attachCommentIDs").Msg("error iterating comment ids")
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

func (r *postRepository) Update(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	post.UpdatedAt = now()
	query, args, err := buildUpdatePostQuery(r.db.builder, post)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.Update").Msg("error building query")
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrPostNotFound); err != nil {
		if !errors.Is(err, ErrPostNotFound) {
			log.Err(err).Str("func", "*postRepository.Update").Msg("error updating post")
		}
		return models.Post{}, err
	}

	return r.GetByID(ctx, post.ID)
}

// Delete removes the post; its comments go with it through ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(r.db.builder, models.Post{}.TableName(), id)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffectingOne(ctx, query, args, ErrPostNotFound); err != nil {
		if !errors.Is(err, ErrPostNotFound) {
			log.Err(err).Str("func", "*postRepository.Delete").Msg("error deleting post")
		}
		return err
	}

	return nil
}

func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.Title,
		&post.Body,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	return post, err
}
