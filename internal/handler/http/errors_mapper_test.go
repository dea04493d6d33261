// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/oauth"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"inactive user", service.ErrInactiveUser, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"wrapped post not found", fmt.Errorf("error getting post: %w", store.ErrPostNotFound), http.StatusNotFound},
		{"comment not found", store.ErrCommentNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"malformed json", fmt.Errorf("%w: unexpected EOF", ErrMalformedJSON), http.StatusBadRequest},
		{"unsupported media type", ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"notification failed", service.ErrNotificationFailed, http.StatusBadGateway},
		{"provider unavailable", oauth.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"query failure", fmt.Errorf("%w: connection reset", store.ErrExecutingQuery), http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := statusFromError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteError_ValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &service.ValidationError{Fields: map[string][]string{
		"title": {"This field is required."},
		"body":  {"This field may not be blank."},
	}}

	writeError(rec, httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil), fmt.Errorf("creating post: %w", err))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, err.Fields, fields)
}

func TestWriteError_DetailBodies(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found", store.ErrPostNotFound, http.StatusNotFound, "Not found."},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "You do not have permission to perform this action."},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, "Authentication credentials were not provided."},
		{"internal details hidden", fmt.Errorf("%w: pq: relation missing", store.ErrExecutingQuery), http.StatusInternalServerError, "A server error occurred."},
		{"unknown error hidden", errors.New("secret"), http.StatusInternalServerError, "A server error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
		})
	}
}

func TestWriteError_SeveralSentinelsPickTheRequestError(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrMalformedJSON, store.ErrUserNotFound)

	for range 20 {
		status, target := statusFromError(err)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, ErrMalformedJSON, target)

		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "JSON parse error.", detailOf(t, rec))
	}
}

func TestWriteError_ChallengeOnUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrUnauthenticated)

	assert.Equal(t, wwwAuthenticate, rec.Header().Get("WWW-Authenticate"))
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "", sentence(""))
	assert.Equal(t, "Not found.", sentence("not found"))
	assert.Equal(t, "Done!", sentence("done!"))
	assert.Equal(t, "Already.", sentence("already."))
}
