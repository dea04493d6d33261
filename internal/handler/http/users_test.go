// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
)

func storedAlice() models.User {
	return models.User{
		ID:           aliceID,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Alice",
		LastName:     "Liddell",
		Country:      "GB",
		About:        "down the rabbit hole",
		IsActive:     true,
	}
}

func userPath(parts ...string) string {
	path := "/api/v1/users/" + aliceID.String() + "/"
	for _, p := range parts {
		path += p + "/"
	}
	return path
}

func TestListUsers(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		listFn: func(context.Context) ([]models.User, error) {
			return []models.User{storedAlice(), {ID: bobID, Username: "bob"}}, nil
		},
	}})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/users/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id": "`+aliceID.String()+`", "username": "alice"},
		{"id": "`+bobID.String()+`", "username": "bob"}
	]`, rec.Body.String())
}

func TestGetUser(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		getFn: func(_ context.Context, id uuid.UUID) (models.User, error) {
			if id != aliceID {
				return models.User{}, store.ErrUserNotFound
			}
			return storedAlice(), nil
		},
	}})

	rec := doRequest(t, router, http.MethodGet, userPath(), "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": "`+aliceID.String()+`",
		"username": "alice",
		"first_name": "Alice",
		"last_name": "Liddell",
		"email": "alice@example.com",
		"country": "GB",
		"about": "down the rabbit hole",
		"image": null
	}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = doRequest(t, router, http.MethodGet, "/api/v1/users/"+bobID.String()+"/", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	tests := []struct {
		method      string
		wantPartial bool
	}{
		{http.MethodPut, false},
		{http.MethodPatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			router := newTestRouter(&service.Services{UserService: &mockUserService{
				updateFn: func(_ context.Context, caller models.Identity, id uuid.UUID, upd models.UserUpdate, partial bool) (models.User, error) {
					assert.Equal(t, alice, caller)
					assert.Equal(t, aliceID, id)
					assert.Equal(t, tt.wantPartial, partial)
					require.NotNil(t, upd.About)
					u := storedAlice()
					u.About = *upd.About
					return u, nil
				},
			}})

			body := `{"username":"alice","about":"new bio","email":"ignored@example.com","id":"` + bobID.String() + `"}`
			rec := doRequest(t, router, tt.method, userPath(), body, "alice-token")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"about":"new bio"`)
			assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)
		})
	}
}

func TestUpdateUser_UsernameTaken(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		updateFn: func(context.Context, models.Identity, uuid.UUID, models.UserUpdate, bool) (models.User, error) {
			return models.User{}, service.NewValidationError("username", service.MsgUsernameNotUnique)
		},
	}})

	rec := doRequest(t, router, http.MethodPatch, userPath(), `{"username":"bob"}`, "alice-token")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"username":["A user with that username already exists."]}`, rec.Body.String())
}

func TestDeleteUser(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		deleteFn: func(_ context.Context, caller models.Identity, id uuid.UUID) error {
			if caller != alice {
				return service.ErrForbidden
			}
			return nil
		},
	}})

	assert.Equal(t, http.StatusForbidden, doRequest(t, router, http.MethodDelete, userPath(), "", "bob-token").Code)
	assert.Equal(t, http.StatusNoContent, doRequest(t, router, http.MethodDelete, userPath(), "", "alice-token").Code)
}

// ─────────────────────────────────────────────
// Avatar
// ─────────────────────────────────────────────

func TestGetUserImage(t *testing.T) {
	withImage := storedAlice()
	withImage.Image = "users/alice/a.png"
	withImage.ImageURL = "/media/users/alice/a.png"

	tests := []struct {
		name string
		user models.User
		want string
	}{
		{"with avatar", withImage, `{"image":"/media/users/alice/a.png"}`},
		{"without avatar", storedAlice(), `{"image":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&service.Services{UserService: &mockUserService{
				getImageFn: func(context.Context, uuid.UUID) (models.User, error) { return tt.user, nil },
			}})

			rec := doRequest(t, router, http.MethodGet, userPath("pic"), "", "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

// multipartRequest builds a request whose form carries content as the file
// field. A nil content builds a form with only a text field.
func multipartRequest(t *testing.T, method string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if content != nil {
		part, err := mw.CreateFormFile(imageFormField, "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "nothing attached"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, userPath("pic"), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer alice-token")
	return req
}

func TestSetUserImage_Multipart(t *testing.T) {
	var got []byte
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		setImageFn: func(_ context.Context, caller models.Identity, id uuid.UUID, upload models.ImageUpload) (models.User, error) {
			assert.Equal(t, alice, caller)
			assert.Equal(t, "avatar.png", upload.Filename)
			require.NotNil(t, upload.Content)
			got, _ = io.ReadAll(upload.Content)

			u := storedAlice()
			u.ImageURL = "/media/users/alice/new.png"
			return u, nil
		},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, http.MethodPut, []byte("png-bytes")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []byte("png-bytes"), got)
	assert.JSONEq(t, `{"image":"/media/users/alice/new.png"}`, rec.Body.String())
}

func TestSetUserImage_EmptyFormKeepsAvatar(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		setImageFn: func(_ context.Context, _ models.Identity, _ uuid.UUID, upload models.ImageUpload) (models.User, error) {
			assert.Nil(t, upload.Content)
			return storedAlice(), nil
		},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, http.MethodPatch, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"image":null}`, rec.Body.String())
}

func TestSetUserImage_URLEncoded(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		setImageFn: func(_ context.Context, _ models.Identity, _ uuid.UUID, upload models.ImageUpload) (models.User, error) {
			assert.Nil(t, upload.Content)
			return storedAlice(), nil
		},
	}})

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
	}{
		{"empty form", url.Values{}, http.StatusOK},
		{"text instead of file", url.Values{imageFormField: {"not a file"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, userPath("pic"), strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Authorization", "Bearer alice-token")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSetUserImage_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{}})

	rec := doRequest(t, router, http.MethodPut, userPath("pic"), `{"image":"x"}`, "alice-token")

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSetUserImage_InvalidImage(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		setImageFn: func(context.Context, models.Identity, uuid.UUID, models.ImageUpload) (models.User, error) {
			return models.User{}, service.NewValidationError("image", service.MsgInvalidImage)
		},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, http.MethodPut, []byte("not an image")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"image"`)
}

func TestDeleteUserImage(t *testing.T) {
	router := newTestRouter(&service.Services{UserService: &mockUserService{
		deleteImageFn: func(_ context.Context, caller models.Identity, id uuid.UUID) error {
			assert.Equal(t, aliceID, id)
			if caller.IsAnonymous() {
				return service.ErrUnauthenticated
			}
			return nil
		},
	}})

	assert.Equal(t, http.StatusUnauthorized, doRequest(t, router, http.MethodDelete, userPath("pic"), "", "").Code)
	assert.Equal(t, http.StatusNoContent, doRequest(t, router, http.MethodDelete, userPath("pic"), "", "alice-token").Code)
}
