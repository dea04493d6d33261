// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/validators"
)

var (
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrInactiveUser    = errors.New("user inactive or deleted")
	ErrForbidden       = errors.New("you do not have permission to perform this action")

	ErrNotificationFailed = errors.New("error sending notification email")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Messages of validation errors produced by the service layer itself.
const (
	MsgPasswordsMismatch = "Passwords did not match"
	MsgEmailNotUnique    = "This field must be unique."
	MsgUsernameNotUnique = "A user with that username already exists."
	MsgNoMatchingAccount = "credentials do not match any user account!"
	MsgInvalidImage      = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	MsgImageTooLarge     = "The submitted file is too large."
	MsgNoFile            = "No file was submitted."
)

// ValidationError reports invalid client input field by field.
// Fields maps the JSON name of a field to its messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError for a single field.
func NewValidationError(field string, messages ...string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: messages}}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(slices.Sorted(maps.Keys(e.Fields)), ", ")
}

// asValidationError converts field errors of the validators package into
// a ValidationError. Other errors are returned unchanged.
func asValidationError(err error) error {
	var fieldErrors validators.FieldErrors
	if errors.As(err, &fieldErrors) {
		return &ValidationError{Fields: fieldErrors}
	}
	return err
}
