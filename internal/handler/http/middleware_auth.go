// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

// authenticate resolves the caller of a request from its bearer token.
//
// Requests without an Authorization header, or with a scheme other than
// Bearer, continue as anonymous; handlers and services decide whether that
// is enough. A Bearer header that is malformed, carries a rejected token or
// belongs to an inactive user ends the request with 401. When the token
// provider cannot be reached the request ends with 503.
//
// On success the caller identity is stored in the request context, see
// [utils.WithIdentity].
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if !isBearer(authHeader) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Msg("malformed authorization header")
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error authenticating request")
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

// isBearer reports whether authHeader uses the Bearer scheme.
func isBearer(authHeader string) bool {
	scheme, _, _ := strings.Cut(strings.TrimSpace(authHeader), " ")
	return strings.EqualFold(scheme, "Bearer")
}
