// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
)

var postCreated = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func alicePost() models.Post {
	return models.Post{
		ID:             postID,
		AuthorID:       aliceID,
		AuthorUsername: "alice",
		Title:          "Hello",
		Body:           "World",
		CreatedAt:      postCreated,
		UpdatedAt:      postCreated,
	}
}

func TestListPosts(t *testing.T) {
	withComment := alicePost()
	withComment.CommentIDs = []uuid.UUID{commentID}

	router := newTestRouter(&service.Services{PostService: &mockPostService{
		listFn: func(context.Context) ([]models.Post, error) {
			return []models.Post{withComment}, nil
		},
	}})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/posts/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id": "`+postID.String()+`",
		"author": "alice",
		"title": "Hello",
		"body": "World",
		"created": "2026-03-01T12:00:00Z",
		"updated": "2026-03-01T12:00:00Z",
		"comments": ["`+commentID.String()+`"]
	}]`, rec.Body.String())
}

func TestListPosts_EmptyIsArray(t *testing.T) {
	router := newTestRouter(&service.Services{PostService: &mockPostService{
		listFn: func(context.Context) ([]models.Post, error) { return nil, nil },
	}})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/posts", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreatePost(t *testing.T) {
	var gotCaller models.Identity
	router := newTestRouter(&service.Services{PostService: &mockPostService{
		createFn: func(_ context.Context, caller models.Identity, in models.PostInput) (models.Post, error) {
			gotCaller = caller
			require.NotNil(t, in.Title)
			assert.Equal(t, "Hello", *in.Title)
			return alicePost(), nil
		},
	}})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/posts/", `{"title":"Hello","body":"World","author":"mallory"}`, "alice-token")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, alice, gotCaller)

	var body models.PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.Author)
	assert.Empty(t, body.Comments)
	assert.NotNil(t, body.Comments)
}

func TestCreatePost_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		token      string
		svcErr     error
		wantStatus int
	}{
		{"anonymous", `{"title":"t","body":"b"}`, "", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid token", `{"title":"t","body":"b"}`, "forged", nil, http.StatusUnauthorized},
		{"malformed json", `{"title":`, "alice-token", nil, http.StatusBadRequest},
		{"validation", `{"title":""}`, "alice-token", service.NewValidationError("title", "This field may not be blank."), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&service.Services{PostService: &mockPostService{
				createFn: func(context.Context, models.Identity, models.PostInput) (models.Post, error) {
					return models.Post{}, tt.svcErr
				},
			}})

			rec := doRequest(t, router, http.MethodPost, "/api/v1/posts/", tt.body, tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestGetPost(t *testing.T) {
	router := newTestRouter(&service.Services{PostService: &mockPostService{
		getFn: func(_ context.Context, id uuid.UUID) (models.Post, error) {
			if id != postID {
				return models.Post{}, store.ErrPostNotFound
			}
			return alicePost(), nil
		},
	}})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing post", "/api/v1/posts/" + postID.String() + "/", http.StatusOK},
		{"unknown post", "/api/v1/posts/" + uuid.New().String() + "/", http.StatusNotFound},
		{"malformed id", "/api/v1/posts/42/", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.path, "", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdatePost_PutAndPatch(t *testing.T) {
	tests := []struct {
		method      string
		wantPartial bool
	}{
		{http.MethodPut, false},
		{http.MethodPatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var gotPartial bool
			router := newTestRouter(&service.Services{PostService: &mockPostService{
				updateFn: func(_ context.Context, caller models.Identity, id uuid.UUID, in models.PostInput, partial bool) (models.Post, error) {
					gotPartial = partial
					assert.Equal(t, alice, caller)
					assert.Equal(t, postID, id)
					post := alicePost()
					post.Body = *in.Body
					return post, nil
				},
			}})

			rec := doRequest(t, router, tt.method, "/api/v1/posts/"+postID.String()+"/", `{"title":"Hello","body":"edited"}`, "alice-token")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantPartial, gotPartial)
			assert.Contains(t, rec.Body.String(), `"body":"edited"`)
		})
	}
}

func TestUpdatePost_EmptyPatchBody(t *testing.T) {
	router := newTestRouter(&service.Services{PostService: &mockPostService{
		updateFn: func(_ context.Context, _ models.Identity, _ uuid.UUID, in models.PostInput, _ bool) (models.Post, error) {
			assert.Nil(t, in.Title)
			assert.Nil(t, in.Body)
			return alicePost(), nil
		},
	}})

	rec := doRequest(t, router, http.MethodPatch, "/api/v1/posts/"+postID.String()+"/", "", "alice-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	router := newTestRouter(&service.Services{PostService: &mockPostService{
		updateFn: func(context.Context, models.Identity, uuid.UUID, models.PostInput, bool) (models.Post, error) {
			return models.Post{}, service.ErrForbidden
		},
	}})

	rec := doRequest(t, router, http.MethodPatch, "/api/v1/posts/"+postID.String()+"/", `{"body":"hacked"}`, "bob-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action.", detailOf(t, rec))
}

func TestDeletePost(t *testing.T) {
	var deleted uuid.UUID
	router := newTestRouter(&service.Services{PostService: &mockPostService{
		deleteFn: func(_ context.Context, _ models.Identity, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}})

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/posts/"+postID.String()+"/", "", "alice-token")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.Equal(t, postID, deleted)
}
