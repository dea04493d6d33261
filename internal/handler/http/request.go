// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// maxJSONBodySize bounds JSON request bodies.
const maxJSONBodySize = 1 << 20

// decodeJSON reads the JSON body of r into dst. An empty body leaves dst
// untouched so that partial updates without changes are accepted.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return nil
}

// pathID parses the UUID route parameter name. A malformed value cannot
// address any resource and yields ErrNotFound.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", ErrNotFound, name, chi.URLParam(r, name))
	}
	return id, nil
}

// caller returns the identity attached by the authenticate middleware, the
// anonymous identity when the request carried no credentials.
func caller(r *http.Request) models.Identity {
	identity, _ := utils.GetIdentityFromContext(r.Context())
	return identity
}

// isPartial reports whether r asks for a partial update.
func isPartial(r *http.Request) bool {
	return r.Method == http.MethodPatch
}
