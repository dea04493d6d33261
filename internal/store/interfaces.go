// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-blog-api/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts user. A zero ID is replaced by a new one and the
	// timestamps are set. Unique violations are reported as
	// [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists].
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	// List returns all users, oldest first.
	List(ctx context.Context) ([]models.User, error)
	// Update stores the profile fields of user (username, names, about,
	// country) and returns the stored record.
	Update(ctx context.Context, user models.User) (models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// SetPassword replaces the password hash and the active flag in a single
	// statement.
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string, active bool) error
	// SetImage replaces the avatar key; an empty key clears it.
	SetImage(ctx context.Context, id uuid.UUID, image string) error
	// Delete removes the user together with their posts and comments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRepository persists posts.
type PostRepository interface {
	Create(ctx context.Context, post models.Post) (models.Post, error)
	// GetByID returns the post with its author username and comment ids.
	GetByID(ctx context.Context, id uuid.UUID) (models.Post, error)
	// List returns all posts, newest first.
	List(ctx context.Context) ([]models.Post, error)
	// Update stores title and body and returns the stored record.
	Update(ctx context.Context, post models.Post) (models.Post, error)
	// Delete removes the post together with its comments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository persists comments. Every lookup is scoped to the
// parent post.
type CommentRepository interface {
	// Create inserts comment; a missing parent post yields [ErrPostNotFound].
	Create(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetByID(ctx context.Context, postID, id uuid.UUID) (models.Comment, error)
	// ListByPost returns the comments of a post, newest first.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	// Update stores the body and returns the stored record.
	Update(ctx context.Context, comment models.Comment) (models.Comment, error)
	Delete(ctx context.Context, postID, id uuid.UUID) error
}

// ImageStorage keeps avatar assets outside the relational database.
// Keys are slash separated relative paths such as "users/<id>/<name>.png".
type ImageStorage interface {
	Save(ctx context.Context, key string, content io.Reader, contentType string) error
	// Delete removes the asset; deleting a missing asset is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the location clients fetch the asset from.
	URL(ctx context.Context, key string) (string, error)
}
