// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/oauth"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
)

// authService is the concrete implementation of AuthService.
//
// Token validation is delegated to an OAuth2 TokenValidator; the service
// only maps the validated principal onto a stored, active user.
type authService struct {
	// validator checks bearer tokens against the authorization server.
	validator oauth.TokenValidator

	// userRepository resolves principals to users.
	userRepository store.UserRepository

	logger *logger.Logger
}

// NewAuthService constructs an AuthService trusting tokens accepted by
// validator.
func NewAuthService(validator oauth.TokenValidator, userRepository store.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		validator:      validator,
		userRepository: userRepository,
		logger:         logger,
	}
}

// Authenticate validates bearer and returns the identity of its user.
//
// The principal subject is looked up as a user id when it parses as a
// UUID, otherwise as a username; a username claim is used as fallback.
//
// Returns:
//   - ErrInvalidToken if the token is rejected or names no user;
//   - ErrInactiveUser if the user has not confirmed its account;
//   - a wrapped error if the authorization server or storage fails.
func (a *authService) Authenticate(ctx context.Context, bearer string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	principal, err := a.validator.Validate(ctx, bearer)
	if errors.Is(err, oauth.ErrInvalidToken) {
		return models.Identity{}, ErrInvalidToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("error validating bearer token")
		return models.Identity{}, fmt.Errorf("error validating bearer token: %w", err)
	}

	user, err := a.lookup(ctx, principal)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("subject", principal.Subject).Msg("token subject matches no user")
		return models.Identity{}, ErrInvalidToken
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("error resolving token subject: %w", err)
	}

	if !user.IsActive {
		return models.Identity{}, ErrInactiveUser
	}

	return models.NewIdentity(user), nil
}

func (a *authService) lookup(ctx context.Context, principal oauth.Principal) (models.User, error) {
	if id, err := uuid.Parse(principal.Subject); err == nil {
		return a.userRepository.GetByID(ctx, id)
	}
	if principal.Subject != "" {
		return a.userRepository.GetByUsername(ctx, principal.Subject)
	}
	if principal.Username != "" {
		return a.userRepository.GetByUsername(ctx, principal.Username)
	}
	return models.User{}, store.ErrUserNotFound
}
