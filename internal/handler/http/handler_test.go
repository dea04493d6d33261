// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

// doRequest sends a JSON request through router. An empty token sends an
// anonymous request.
func doRequest(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// detailOf decodes the {"detail": "..."} body of rec.
func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body.Detail
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svcs := &service.Services{}
	log := logger.Nop()
	server := config.Server{HTTPAddress: "localhost:8080"}
	media := config.Media{Backend: config.MediaBackendFS}

	h := NewHandler(svcs, server, media, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Same(t, log, h.logger)
	assert.Equal(t, server, h.server)
	assert.Equal(t, media, h.media)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	{http.MethodGet, "/api/version/"},

	{http.MethodPost, "/api/v1/registration/"},
	{http.MethodGet, "/api/v1/activate/uid/token/"},
	{http.MethodPost, "/api/v1/password_reset/"},
	{http.MethodGet, "/api/v1/password_verify/uid/token/"},

	{http.MethodGet, "/api/v1/users/"},
	{http.MethodGet, "/api/v1/users/" + aliceID.String() + "/"},
	{http.MethodPut, "/api/v1/users/" + aliceID.String() + "/"},
	{http.MethodPatch, "/api/v1/users/" + aliceID.String() + "/"},
	{http.MethodDelete, "/api/v1/users/" + aliceID.String() + "/"},
	{http.MethodGet, "/api/v1/users/" + aliceID.String() + "/pic/"},
	{http.MethodPut, "/api/v1/users/" + aliceID.String() + "/pic/"},
	{http.MethodPatch, "/api/v1/users/" + aliceID.String() + "/pic/"},
	{http.MethodDelete, "/api/v1/users/" + aliceID.String() + "/pic/"},

	{http.MethodGet, "/api/v1/posts/"},
	{http.MethodPost, "/api/v1/posts/"},
	{http.MethodGet, "/api/v1/posts/" + postID.String() + "/"},
	{http.MethodPut, "/api/v1/posts/" + postID.String() + "/"},
	{http.MethodPatch, "/api/v1/posts/" + postID.String() + "/"},
	{http.MethodDelete, "/api/v1/posts/" + postID.String() + "/"},

	{http.MethodGet, "/api/v1/posts/" + postID.String() + "/comments/"},
	{http.MethodPost, "/api/v1/posts/" + postID.String() + "/comments/"},
	{http.MethodGet, "/api/v1/posts/" + postID.String() + "/comments/" + commentID.String() + "/"},
	{http.MethodPut, "/api/v1/posts/" + postID.String() + "/comments/" + commentID.String() + "/"},
	{http.MethodPatch, "/api/v1/posts/" + postID.String() + "/comments/" + commentID.String() + "/"},
	{http.MethodDelete, "/api/v1/posts/" + postID.String() + "/comments/" + commentID.String() + "/"},
}

func TestInit_AllRoutesRegistered(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{}, config.Media{}, logger.Nop())
	router := h.Init()

	for _, rc := range expectedRoutes {
		t.Run(rc.method+" "+rc.path, func(t *testing.T) {
			path := strings.TrimSuffix(rc.path, "/")
			assert.Contains(t, allowedMethods(router, path), rc.method,
				"route should be registered: %s %s", rc.method, rc.path)
		})
	}
}

func TestInit_WithAndWithoutTrailingSlash(t *testing.T) {
	router := newTestRouter(&service.Services{})

	for _, path := range []string{"/api/version", "/api/version/"} {
		rec := doRequest(t, router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "test-version", rec.Body.String())
	}
}

func TestInit_UnknownRouteIsJSONNotFound(t *testing.T) {
	router := newTestRouter(&service.Services{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/unknown/", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Not found.", detailOf(t, rec))
}

func TestInit_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(&service.Services{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/users/", "{}", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Allow"))
	assert.Equal(t, `Method "POST" not allowed.`, detailOf(t, rec))
}

func TestInit_MethodNotAllowedOnDetailRoute(t *testing.T) {
	router := newTestRouter(&service.Services{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/posts/"+postID.String()+"/", "{}", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, PUT, PATCH, DELETE, OPTIONS", rec.Header().Get("Allow"))
}

func TestInit_TraceIDHeader(t *testing.T) {
	router := newTestRouter(&service.Services{})

	rec := doRequest(t, router, http.MethodGet, "/api/version/", "", "")

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_CORSPreflight(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{AllowedOrigins: []string{"https://blog.example.com"}}, config.Media{}, logger.Nop())
	router := h.Init()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts/", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://blog.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInit_ServesLocalMedia(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "users"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users", "a.png"), []byte("png-bytes"), 0o644))

	media := config.Media{Backend: config.MediaBackendFS, Dir: dir, BaseURL: "/media"}
	router := NewHandler(&service.Services{}, config.Server{}, media, logger.Nop()).Init()

	rec := doRequest(t, router, http.MethodGet, "/media/users/a.png", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestServesMedia(t *testing.T) {
	tests := []struct {
		name  string
		media config.Media
		want  bool
	}{
		{"local path", config.Media{Backend: config.MediaBackendFS, Dir: "media", BaseURL: "/media"}, true},
		{"absolute url", config.Media{Backend: config.MediaBackendFS, Dir: "media", BaseURL: "https://cdn.example.com/media"}, false},
		{"root path", config.Media{Backend: config.MediaBackendFS, Dir: "media", BaseURL: "/"}, false},
		{"s3 backend", config.Media{Backend: config.MediaBackendS3, BaseURL: "/media"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{media: tt.media}
			assert.Equal(t, tt.want, h.servesMedia())
		})
	}
}
