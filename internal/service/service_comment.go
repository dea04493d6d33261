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

type commentService struct {
	posts     store.PostRepository
	comments  store.CommentRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewCommentService(
	posts store.PostRepository,
	comments store.CommentRepository,
	validator validators.Validator,
	logger *logger.Logger,
) CommentService {
	return &commentService{
		posts:     posts,
		comments:  comments,
		validator: validator,
		logger:    logger,
	}
}

// List returns the comments of post postID, newest first.
func (s *commentService) List(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	if err := s.postExists(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) Get(ctx context.Context, postID, id uuid.UUID) (models.Comment, error) {
	if err := s.postExists(ctx, postID); err != nil {
		return models.Comment{}, err
	}

	comment, err := s.comments.GetByID(ctx, postID, id)
	if err != nil {
		return models.Comment{}, fmt.Errorf("error getting comment: %w", err)
	}
	return comment, nil
}

// Create stores a comment owned by caller under post postID.
func (s *commentService) Create(ctx context.Context, caller models.Identity, postID uuid.UUID, in models.CommentInput) (models.Comment, error) {
	if err := requireAuthenticated(caller); err != nil {
		return models.Comment{}, err
	}
	if err := s.postExists(ctx, postID); err != nil {
		return models.Comment{}, err
	}

	in = models.CommentInput{Body: trimmed(in.Body)}
	if err := s.validator.Validate(ctx, in, validators.FieldBody); err != nil {
		return models.Comment{}, asValidationError(err)
	}

	comment, err := s.comments.Create(ctx, models.Comment{
		AuthorID: caller.UserID,
		PostID:   postID,
		Body:     *in.Body,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.Create").Str("post_id", postID.String()).Msg("error creating comment")
		return models.Comment{}, fmt.Errorf("error creating comment: %w", err)
	}
	comment.AuthorUsername = caller.Username

	return comment, nil
}

func (s *commentService) Update(ctx context.Context, caller models.Identity, postID, id uuid.UUID, in models.CommentInput, partial bool) (models.Comment, error) {
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return models.Comment{}, err
	}
	if err = CanWrite(caller, comment.AuthorID); err != nil {
		return models.Comment{}, err
	}

	in = models.CommentInput{Body: trimmed(in.Body)}
	var required []string
	if !partial {
		required = []string{validators.FieldBody}
	}
	if err = s.validator.Validate(ctx, in, required...); err != nil {
		return models.Comment{}, asValidationError(err)
	}

	if in.Body != nil {
		comment.Body = *in.Body
	}

	updated, err := s.comments.Update(ctx, comment)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.Update").Str("comment_id", id.String()).Msg("error updating comment")
		return models.Comment{}, fmt.Errorf("error updating comment: %w", err)
	}

	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, caller models.Identity, postID, id uuid.UUID) error {
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return err
	}
	if err = CanWrite(caller, comment.AuthorID); err != nil {
		return err
	}

	if err = s.comments.Delete(ctx, postID, comment.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.Delete").Str("comment_id", id.String()).Msg("error deleting comment")
		return fmt.Errorf("error deleting comment: %w", err)
	}

	return nil
}

// postExists resolves the parent post of a comment route.
func (s *commentService) postExists(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return fmt.Errorf("error getting post: %w", err)
	}
	return nil
}
