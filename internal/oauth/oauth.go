// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package oauth resolves OAuth2 bearer tokens presented to the API into
// the principal they were issued for. Tokens are issued by an external
// authorization server; this package only validates them.
package oauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

//go:generate mockgen -source=oauth.go -destination=../mock/oauth_mock.go -package=mock

var (
	// ErrInvalidToken is returned for every token that must not be
	// accepted, whatever the reason.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrProviderUnavailable is returned when the authorization server
	// could not be asked about a token.
	ErrProviderUnavailable = errors.New("authorization server unavailable")
)

// Principal is the account a bearer token was issued for. Subject is
// either a user id or a username; Username is filled when the token
// carries it.
type Principal struct {
	Subject  string
	Username string
}

// TokenValidator checks a bearer token and returns its principal.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (Principal, error)
}

// NewTokenValidator returns the validator selected by cfg.Mode.
func NewTokenValidator(cfg config.Auth) (TokenValidator, error) {
	switch cfg.Mode {
	case config.AuthModeJWT:
		return NewJWTValidator(utils.JWTParams{
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
			SignKey:  cfg.TokenSignKey,
		}), nil
	case config.AuthModeIntrospection:
		return NewIntrospectionValidator(cfg.IntrospectionURL, cfg.ClientID, cfg.ClientSecret, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
