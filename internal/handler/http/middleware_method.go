// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-blog-api/internal/utils"
)

var routableMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// methodNotAllowed returns the handler registered via
// [chi.Mux.MethodNotAllowed]. It answers 405 with a JSON detail and an
// Allow header listing the methods the matched path does support.
func methodNotAllowed(router chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r.URL.Path)
		if len(allowed) == 0 {
			writeError(w, r, ErrNotFound)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.WriteError(w, fmt.Sprintf("Method %q not allowed.", r.Method), http.StatusMethodNotAllowed)
	}
}

// allowedMethods lists the methods router serves for path.
func allowedMethods(router chi.Routes, path string) []string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	allowed := make([]string, 0, len(routableMethods)+1)
	for _, method := range routableMethods {
		if router.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	if len(allowed) > 0 {
		allowed = append(allowed, http.MethodOptions)
	}

	return allowed
}
