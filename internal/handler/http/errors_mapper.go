// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/oauth"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

const wwwAuthenticate = `Bearer realm="api"`

// errorStatuses maps sentinels to status codes. The first sentinel an error
// wraps wins, so request level errors are listed before the service and
// storage errors they may wrap.
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrMalformedJSON, http.StatusBadRequest},
	{ErrMalformedGzip, http.StatusBadRequest},
	{ErrMalformedForm, http.StatusBadRequest},
	{ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
	{ErrNotFound, http.StatusNotFound},

	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrInactiveUser, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotificationFailed, http.StatusBadGateway},
	{service.ErrVersionIsNotSpecified, http.StatusInternalServerError},

	{oauth.ErrInvalidToken, http.StatusUnauthorized},
	{oauth.ErrProviderUnavailable, http.StatusServiceUnavailable},

	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrPostNotFound, http.StatusNotFound},
	{store.ErrCommentNotFound, http.StatusNotFound},
	{store.ErrImageNotFound, http.StatusNotFound},
	{store.ErrUsernameAlreadyExists, http.StatusBadRequest},
	{store.ErrEmailAlreadyExists, http.StatusBadRequest},
	{store.ErrUserAlreadyExists, http.StatusBadRequest},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

// statusFromError returns the status code of the first sentinel in
// errorStatuses that err wraps together with that sentinel. Unknown errors map to 500 and a nil
// sentinel.
func statusFromError(err error) (int, error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.target
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError renders err as the response of r.
//
// Validation errors become a 400 with the per-field message map, every
// other error a {"detail": "..."} body. Server side failures are logged
// and their details are never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		utils.WriteJSON(w, validationErr.Fields, http.StatusBadRequest)
		return
	}

	status, target := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Int("status", status).Msg("request failed")
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", wwwAuthenticate)
	}

	utils.WriteError(w, detailFor(status, target), status)
}

// detailFor builds the client facing message of a mapped error.
func detailFor(status int, target error) string {
	switch {
	case status == http.StatusNotFound:
		return "Not found."
	case target == nil || status == http.StatusInternalServerError:
		return "A server error occurred."
	}
	return sentence(target.Error())
}

// sentence capitalizes msg and terminates it with a period.
func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") {
		msg += "."
	}
	return msg
}
