// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/models"
)

var (
	aliceID = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-000000000a11")
	bobID   = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-000000000b0b")
	staffID = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-0000000005af")
)

var (
	alice = models.Identity{UserID: aliceID, Username: "alice"}
	bob   = models.Identity{UserID: bobID, Username: "bob"}
	staff = models.Identity{UserID: staffID, Username: "admin", IsStaff: true}
)

func ptr(s string) *string { return &s }

// validationFields asserts err is a *ValidationError and returns its fields.
func validationFields(t *testing.T, err error) map[string][]string {
	t.Helper()

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %v", err)
	return validationErr.Fields
}
