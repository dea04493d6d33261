// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/oauth"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/tokens"
	"github.com/MKhiriev/go-blog-api/internal/validators"
)

type Services struct {
	AccountService AccountService
	UserService    UserService
	PostService    PostService
	CommentService CommentService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(
	storages *store.Storages,
	notifier Notifier,
	tokenValidator oauth.TokenValidator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewBlogValidator()
	signer := tokens.NewSigner(cfg.App.SecretKey, time.Duration(cfg.App.TokenExpiryDays)*24*time.Hour)

	return &Services{
		AccountService: NewAccountService(storages.UserRepository, storages.ImageStorage, validator, signer, notifier, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, storages.ImageStorage, validator, cfg.Storage.Media, logger),
		PostService:    NewPostService(storages.PostRepository, validator, logger),
		CommentService: NewCommentService(storages.PostRepository, storages.CommentRepository, validator, logger),
		AuthService:    NewAuthService(tokenValidator, storages.UserRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
