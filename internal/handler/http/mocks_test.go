// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Every mock method delegates to the matching fn field. A nil field
// panics, which chi's Recoverer turns into a 500 so a test notices the
// unexpected call.

type mockAccountService struct {
	registerFn            func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	activateFn            func(ctx context.Context, uid, token string) (models.LinkOutcome, error)
	resetPasswordFn       func(ctx context.Context, req models.ResetPasswordRequest) (models.User, error)
	verifyPasswordResetFn func(ctx context.Context, uid, token string) (models.LinkOutcome, error)
	createUserFn          func(ctx context.Context, req models.RegisterRequest, staff bool) (models.User, error)
}

func (m *mockAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAccountService) Activate(ctx context.Context, uid, token string) (models.LinkOutcome, error) {
	return m.activateFn(ctx, uid, token)
}

func (m *mockAccountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (models.User, error) {
	return m.resetPasswordFn(ctx, req)
}

func (m *mockAccountService) VerifyPasswordReset(ctx context.Context, uid, token string) (models.LinkOutcome, error) {
	return m.verifyPasswordResetFn(ctx, uid, token)
}

func (m *mockAccountService) CreateUser(ctx context.Context, req models.RegisterRequest, staff bool) (models.User, error) {
	return m.createUserFn(ctx, req, staff)
}

type mockUserService struct {
	listFn        func(ctx context.Context) ([]models.User, error)
	getFn         func(ctx context.Context, id uuid.UUID) (models.User, error)
	updateFn      func(ctx context.Context, caller models.Identity, id uuid.UUID, upd models.UserUpdate, partial bool) (models.User, error)
	deleteFn      func(ctx context.Context, caller models.Identity, id uuid.UUID) error
	getImageFn    func(ctx context.Context, id uuid.UUID) (models.User, error)
	setImageFn    func(ctx context.Context, caller models.Identity, id uuid.UUID, upload models.ImageUpload) (models.User, error)
	deleteImageFn func(ctx context.Context, caller models.Identity, id uuid.UUID) error
}

func (m *mockUserService) List(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}

func (m *mockUserService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserService) Update(ctx context.Context, caller models.Identity, id uuid.UUID, upd models.UserUpdate, partial bool) (models.User, error) {
	return m.updateFn(ctx, caller, id, upd, partial)
}

func (m *mockUserService) Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	return m.deleteFn(ctx, caller, id)
}

func (m *mockUserService) GetImage(ctx context.Context, id uuid.UUID) (models.User, error) {
	return m.getImageFn(ctx, id)
}

func (m *mockUserService) SetImage(ctx context.Context, caller models.Identity, id uuid.UUID, upload models.ImageUpload) (models.User, error) {
	return m.setImageFn(ctx, caller, id, upload)
}

func (m *mockUserService) DeleteImage(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	return m.deleteImageFn(ctx, caller, id)
}

type mockPostService struct {
	listFn   func(ctx context.Context) ([]models.Post, error)
	getFn    func(ctx context.Context, id uuid.UUID) (models.Post, error)
	createFn func(ctx context.Context, caller models.Identity, in models.PostInput) (models.Post, error)
	updateFn func(ctx context.Context, caller models.Identity, id uuid.UUID, in models.PostInput, partial bool) (models.Post, error)
	deleteFn func(ctx context.Context, caller models.Identity, id uuid.UUID) error
}

func (m *mockPostService) List(ctx context.Context) ([]models.Post, error) {
	return m.listFn(ctx)
}

func (m *mockPostService) Get(ctx context.Context, id uuid.UUID) (models.Post, error) {
	return m.getFn(ctx, id)
}

func (m *mockPostService) Create(ctx context.Context, caller models.Identity, in models.PostInput) (models.Post, error) {
	return m.createFn(ctx, caller, in)
}

func (m *mockPostService) Update(ctx context.Context, caller models.Identity, id uuid.UUID, in models.PostInput, partial bool) (models.Post, error) {
	return m.updateFn(ctx, caller, id, in, partial)
}

func (m *mockPostService) Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	return m.deleteFn(ctx, caller, id)
}

type mockCommentService struct {
	listFn   func(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	getFn    func(ctx context.Context, postID, id uuid.UUID) (models.Comment, error)
	createFn func(ctx context.Context, caller models.Identity, postID uuid.UUID, in models.CommentInput) (models.Comment, error)
	updateFn func(ctx context.Context, caller models.Identity, postID, id uuid.UUID, in models.CommentInput, partial bool) (models.Comment, error)
	deleteFn func(ctx context.Context, caller models.Identity, postID, id uuid.UUID) error
}

func (m *mockCommentService) List(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return m.listFn(ctx, postID)
}

func (m *mockCommentService) Get(ctx context.Context, postID, id uuid.UUID) (models.Comment, error) {
	return m.getFn(ctx, postID, id)
}

func (m *mockCommentService) Create(ctx context.Context, caller models.Identity, postID uuid.UUID, in models.CommentInput) (models.Comment, error) {
	return m.createFn(ctx, caller, postID, in)
}

func (m *mockCommentService) Update(ctx context.Context, caller models.Identity, postID, id uuid.UUID, in models.CommentInput, partial bool) (models.Comment, error) {
	return m.updateFn(ctx, caller, postID, id, in, partial)
}

func (m *mockCommentService) Delete(ctx context.Context, caller models.Identity, postID, id uuid.UUID) error {
	return m.deleteFn(ctx, caller, postID, id)
}

// mockAuthService resolves tokens through a fixed table.
type mockAuthService struct {
	authenticateFn func(ctx context.Context, bearer string) (models.Identity, error)
}

func (m *mockAuthService) Authenticate(ctx context.Context, bearer string) (models.Identity, error) {
	return m.authenticateFn(ctx, bearer)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

var (
	aliceID   = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-0000000000a1")
	bobID     = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-0000000000b2")
	postID    = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-0000000000f1")
	commentID = uuid.MustParse("0190f5d2-7a1b-7c3d-8e4f-0000000000c1")

	alice = models.Identity{UserID: aliceID, Username: "alice"}
	bob   = models.Identity{UserID: bobID, Username: "bob"}
)

// tokenAuth accepts "alice-token" and "bob-token".
func tokenAuth() *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, bearer string) (models.Identity, error) {
			switch bearer {
			case "alice-token":
				return alice, nil
			case "bob-token":
				return bob, nil
			}
			return models.Identity{}, service.ErrInvalidToken
		},
	}
}

// newTestRouter builds the full router over svcs. Missing auth and app
// info services are filled with defaults.
func newTestRouter(svcs *service.Services) http.Handler {
	if svcs.AuthService == nil {
		svcs.AuthService = tokenAuth()
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test-version"}
	}

	media := config.Media{Backend: config.MediaBackendFS, BaseURL: "/media", MaxUploadSize: 1 << 20}
	return NewHandler(svcs, config.Server{}, media, logger.Nop()).Init()
}
