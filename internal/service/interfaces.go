// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/models"
)

// AccountService covers the account lifecycle driven by emailed links:
// self-registration, activation and password reset.
type AccountService interface {
	// Register creates an inactive user and mails the activation link.
	// Invalid input yields a *ValidationError and no user is created.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Activate follows an activation link. An inactive user whose link does
	// not verify is deleted and LinkExpired is returned.
	Activate(ctx context.Context, uid, token string) (models.LinkOutcome, error)

	// ResetPassword stores the new password, deactivates the user and mails
	// the confirmation link.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (models.User, error)

	// VerifyPasswordReset follows a password reset confirmation link and
	// reactivates the user when it verifies.
	VerifyPasswordReset(ctx context.Context, uid, token string) (models.LinkOutcome, error)

	// CreateUser creates an active user without email confirmation.
	CreateUser(ctx context.Context, req models.RegisterRequest, staff bool) (models.User, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uuid.UUID) (models.User, error)

	// Update applies upd to the profile of user id. A full update
	// (partial == false) requires the username and clears omitted fields.
	Update(ctx context.Context, caller models.Identity, id uuid.UUID, upd models.UserUpdate, partial bool) (models.User, error)
	Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error

	GetImage(ctx context.Context, id uuid.UUID) (models.User, error)

	// SetImage replaces the avatar of user id. An upload without content
	// leaves the avatar unchanged.
	SetImage(ctx context.Context, caller models.Identity, id uuid.UUID, upload models.ImageUpload) (models.User, error)
	DeleteImage(ctx context.Context, caller models.Identity, id uuid.UUID) error
}

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id uuid.UUID) (models.Post, error)
	Create(ctx context.Context, caller models.Identity, in models.PostInput) (models.Post, error)
	Update(ctx context.Context, caller models.Identity, id uuid.UUID, in models.PostInput, partial bool) (models.Post, error)
	Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error
}

// CommentService manages comments. Every operation is scoped to the parent
// post and fails with store.ErrPostNotFound when it does not exist.
type CommentService interface {
	List(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	Get(ctx context.Context, postID, id uuid.UUID) (models.Comment, error)
	Create(ctx context.Context, caller models.Identity, postID uuid.UUID, in models.CommentInput) (models.Comment, error)
	Update(ctx context.Context, caller models.Identity, postID, id uuid.UUID, in models.CommentInput, partial bool) (models.Comment, error)
	Delete(ctx context.Context, caller models.Identity, postID, id uuid.UUID) error
}

// AuthService resolves bearer tokens to caller identities.
type AuthService interface {
	// Authenticate returns the identity of the active user the token was
	// issued for, ErrInvalidToken or ErrInactiveUser.
	Authenticate(ctx context.Context, bearer string) (models.Identity, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
