// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account of the blog.
//
// A freshly registered user is inactive until the activation link sent by
// email is followed. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// ID is the opaque, stable identifier of the user.
	ID uuid.UUID `json:"id"`

	// Username is the unique public handle of the user.
	Username string `json:"username"`

	// Email is the unique contact address used for activation and
	// password reset messages.
	Email string `json:"email"`

	// PasswordHash is the salted one-way hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// About is a short free-form bio, at most 254 characters.
	About string `json:"about"`

	// Country is an ISO 3166-1 alpha-2 country code or empty.
	Country string `json:"country"`

	// Image is the storage key of the avatar asset, empty when the user
	// has no avatar.
	Image string `json:"-"`

	// ImageURL is the resolved public location of Image. It is filled by
	// the service layer and never persisted.
	ImageURL string `json:"-"`

	IsActive bool `json:"-"`
	IsStaff  bool `json:"-"`

	// ActivatedAt is the time of the first activation, nil for an account
	// that has never been activated. A password reset clears IsActive but
	// keeps ActivatedAt.
	ActivatedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasImage reports whether the user has an avatar asset.
func (u User) HasImage() bool {
	return u.Image != ""
}

// Identity describes the caller of a request after bearer token
// resolution. The zero value is the anonymous caller.
type Identity struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

// IsAnonymous reports whether the request carried no credentials.
func (i Identity) IsAnonymous() bool {
	return i.UserID == uuid.Nil
}

// NewIdentity builds the caller identity of an authenticated user.
func NewIdentity(user User) Identity {
	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	}
}

// WasActivated reports whether the account has ever been activated.
func (u User) WasActivated() bool {
	return u.ActivatedAt != nil
}
