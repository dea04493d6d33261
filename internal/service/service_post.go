// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

type postService struct {
	posts     store.PostRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewPostService(posts store.PostRepository, validator validators.Validator, logger *logger.Logger) PostService {
	return &postService{
		posts:     posts,
		validator: validator,
		logger:    logger,
	}
}

// List returns all posts, newest first.
func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("error getting post: %w", err)
	}
	return post, nil
}

// Create stores a post owned by caller. Ownership is never taken from the
// input.
func (s *postService) Create(ctx context.Context, caller models.Identity, in models.PostInput) (models.Post, error) {
	if err := requireAuthenticated(caller); err != nil {
		return models.Post{}, err
	}

	in = trimPostInput(in)
	if err := s.validator.Validate(ctx, in, validators.FieldTitle, validators.FieldBody); err != nil {
		return models.Post{}, asValidationError(err)
	}

	post, err := s.posts.Create(ctx, models.Post{
		AuthorID: caller.UserID,
		Title:    *in.Title,
		Body:     *in.Body,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.Create").Msg("error creating post")
		return models.Post{}, fmt.Errorf("error creating post: %w", err)
	}
	post.AuthorUsername = caller.Username

	return post, nil
}

// Update changes title and body of a post owned by caller. The post must
// exist before ownership is checked, so non-owners get ErrForbidden rather
// than a not-found error.
func (s *postService) Update(ctx context.Context, caller models.Identity, id uuid.UUID, in models.PostInput, partial bool) (models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("error getting post: %w", err)
	}
	if err = CanWrite(caller, post.AuthorID); err != nil {
		return models.Post{}, err
	}

	in = trimPostInput(in)
	var required []string
	if !partial {
		required = []string{validators.FieldTitle, validators.FieldBody}
	}
	if err = s.validator.Validate(ctx, in, required...); err != nil {
		return models.Post{}, asValidationError(err)
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Body != nil {
		post.Body = *in.Body
	}

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.Update").Str("post_id", id.String()).Msg("error updating post")
		return models.Post{}, fmt.Errorf("error updating post: %w", err)
	}

	return updated, nil
}

// Delete removes a post owned by caller and, by cascade, its comments.
func (s *postService) Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting post: %w", err)
	}
	if err = CanWrite(caller, post.AuthorID); err != nil {
		return err
	}

	if err = s.posts.Delete(ctx, post.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.Delete").Str("post_id", id.String()).Msg("error deleting post")
		return fmt.Errorf("error deleting post: %w", err)
	}

	return nil
}

func trimPostInput(in models.PostInput) models.PostInput {
	return models.PostInput{Title: trimmed(in.Title), Body: trimmed(in.Body)}
}
