// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package oauth

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

// JWTValidator accepts HS256 signed JWT access tokens issued with a shared
// key.
type JWTValidator struct {
	params utils.JWTParams
}

// NewJWTValidator returns a validator enforcing params. Issuer and audience
// are only checked when set.
func NewJWTValidator(params utils.JWTParams) *JWTValidator {
	return &JWTValidator{params: params}
}

func (v *JWTValidator) Validate(ctx context.Context, token string) (Principal, error) {
	parsed, err := utils.ValidateAndParseJWTToken(token, v.params)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*JWTValidator.Validate").Msg("rejected access token")
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return Principal{
		Subject:  parsed.AccessClaims.Subject,
		Username: parsed.AccessClaims.Username,
	}, nil
}
