// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks blog input before it reaches the store.
//
// It covers registration and password reset requests (username format,
// email, password policy), profile updates (name and about lengths,
// ISO 3166-1 country codes) and post and comment inputs. Failures are
// reported as [FieldErrors] keyed by the JSON field name so that the
// service layer can return them to the client unchanged.
package validators

import "context"

// Validator validates a request value.
//
// For update inputs, fields lists the JSON field names that must be
// present: a full update (PUT) passes every writable field, a partial
// update (PATCH) passes none and only the supplied fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
