// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/models"
)

// Action is the intent of an operation on a resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Allow reports whether caller may perform action on a resource owned by
// ownerID. Reads are open to everyone, writes only to the owner.
func Allow(action Action, ownerID uuid.UUID, caller models.Identity) bool {
	if action == ActionRead {
		return true
	}
	return !caller.IsAnonymous() && caller.UserID == ownerID
}

// CanWrite returns ErrUnauthenticated for anonymous callers and ErrForbidden
// when caller does not own the resource.
func CanWrite(caller models.Identity, ownerID uuid.UUID) error {
	if caller.IsAnonymous() {
		return ErrUnauthenticated
	}
	if !Allow(ActionWrite, ownerID, caller) {
		return ErrForbidden
	}
	return nil
}

// CanWriteUser is CanWrite for user profiles, where staff may write any
// profile.
func CanWriteUser(caller models.Identity, userID uuid.UUID) error {
	if caller.IsAnonymous() {
		return ErrUnauthenticated
	}
	if caller.IsStaff {
		return nil
	}
	return CanWrite(caller, userID)
}

// requireAuthenticated guards operations that create resources.
func requireAuthenticated(caller models.Identity) error {
	if caller.IsAnonymous() {
		return ErrUnauthenticated
	}
	return nil
}
