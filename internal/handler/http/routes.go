// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-blog-api/internal/config"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.StripSlashes)
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrNotFound)
	})
	router.MethodNotAllowed(methodNotAllowed(router))

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(h.authenticate)

		// account lifecycle
		r.Post("/registration", h.register)
		r.Get("/activate/{uid}/{token}", h.activate)
		r.Post("/password_reset", h.resetPassword)
		r.Get("/password_verify/{uid}/{token}", h.verifyPasswordReset)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", h.getUser)
				r.Put("/", h.updateUser)
				r.Patch("/", h.updateUser)
				r.Delete("/", h.deleteUser)

				r.Get("/pic", h.getUserImage)
				r.Put("/pic", h.setUserImage)
				r.Patch("/pic", h.setUserImage)
				r.Delete("/pic", h.deleteUserImage)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Post("/", h.createPost)
			r.Route("/{postID}", func(r chi.Router) {
				r.Get("/", h.getPost)
				r.Put("/", h.updatePost)
				r.Patch("/", h.updatePost)
				r.Delete("/", h.deletePost)

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", h.listComments)
					r.Post("/", h.createComment)
					r.Route("/{commentID}", func(r chi.Router) {
						r.Get("/", h.getComment)
						r.Put("/", h.updateComment)
						r.Patch("/", h.updateComment)
						r.Delete("/", h.deleteComment)
					})
				})
			})
		})
	})

	if h.servesMedia() {
		prefix := strings.TrimSuffix(h.media.BaseURL, "/")
		router.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(h.media.Dir))))
	}

	return router
}

// servesMedia reports whether avatars are stored on the local disk under a
// path of this server and therefore have to be served by it.
func (h *Handler) servesMedia() bool {
	return h.media.Backend == config.MediaBackendFS &&
		h.media.Dir != "" &&
		strings.HasPrefix(h.media.BaseURL, "/") &&
		strings.TrimSuffix(h.media.BaseURL, "/") != ""
}

func (h *Handler) allowedOrigins() []string {
	if len(h.server.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return h.server.AllowedOrigins
}
