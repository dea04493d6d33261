// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the body of the self-registration endpoint.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// RegisterResponse echoes the public part of a new registration.
type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ResetPasswordRequest is the body of the password reset endpoint.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordResponse echoes the address the confirmation was sent to.
type ResetPasswordResponse struct {
	Email string `json:"email"`
}

// UserUpdate carries profile changes. A nil field is not provided by the
// client; for full updates missing optional fields are cleared.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Country   *string `json:"country,omitempty"`
	About     *string `json:"about,omitempty"`
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// CommentInput carries the writable fields of a comment.
type CommentInput struct {
	Body *string `json:"body,omitempty"`
}

// ImageUpload is an avatar file received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// UserListItem is the collection representation of a user.
type UserListItem struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// UserDetail is the single-resource representation of a user.
// ID, Email and Image are read-only.
type UserDetail struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	About     string    `json:"about"`
	Image     *string   `json:"image"`
}

// UserImage is the representation of the avatar sub-resource.
type UserImage struct {
	Image *string `json:"image"`
}

// PostResponse is the public representation of a post.
type PostResponse struct {
	ID       uuid.UUID   `json:"id"`
	Author   string      `json:"author"`
	Title    string      `json:"title"`
	Body     string      `json:"body"`
	Created  time.Time   `json:"created"`
	Updated  time.Time   `json:"updated"`
	Comments []uuid.UUID `json:"comments"`
}

// CommentResponse is the public representation of a comment.
type CommentResponse struct {
	ID      uuid.UUID `json:"id"`
	Author  string    `json:"author"`
	Post    uuid.UUID `json:"post"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
