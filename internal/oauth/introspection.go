// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package oauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

// IntrospectionValidator asks the authorization server about every token
// (RFC 7662), authenticating with the API's client credentials.
type IntrospectionValidator struct {
	client       *utils.HTTPClient
	url          string
	clientID     string
	clientSecret string
	now          func() time.Time
}

type introspectionResponse struct {
	Active   bool   `json:"active"`
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Expiry   int64  `json:"exp"`
}

// NewIntrospectionValidator returns a validator posting to url.
func NewIntrospectionValidator(url, clientID, clientSecret string, timeout time.Duration) *IntrospectionValidator {
	return &IntrospectionValidator{
		client:       utils.NewHTTPClient(timeout),
		url:          url,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

func (v *IntrospectionValidator) Validate(ctx context.Context, token string) (Principal, error) {
	log := logger.FromContext(ctx)

	var result introspectionResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetBasicAuth(v.clientID, v.clientSecret).
		SetFormData(map[string]string{
			"token":           token,
			"token_type_hint": "access_token",
		}).
		SetResult(&result).
		Post(v.url)
	if err != nil {
		log.Err(err).Str("func", "*IntrospectionValidator.Validate").Msg("error calling introspection endpoint")
		return Principal{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Error().Int("status", resp.StatusCode()).Str("func", "*IntrospectionValidator.Validate").Msg("unexpected introspection response")
		return Principal{}, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	if !result.Active {
		return Principal{}, ErrInvalidToken
	}
	if result.Expiry != 0 && v.now().Unix() > result.Expiry {
		return Principal{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}

	principal := Principal{Subject: result.Subject, Username: result.Username}
	if principal.Subject == "" {
		principal.Subject = principal.Username
	}
	if principal.Subject == "" {
		return Principal{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	return principal, nil
}
