// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.services.PostService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newPostResponses(posts), http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var in models.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		log.Err(err).Str("func", "*Handler.createPost").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.Create(r.Context(), caller(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newPostResponse(post), http.StatusCreated)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newPostResponse(post), http.StatusOK)
}

// updatePost serves PUT (full update) and PATCH (partial update).
func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in models.PostInput
	if err = decodeJSON(w, r, &in); err != nil {
		log.Err(err).Str("func", "*Handler.updatePost").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.Update(r.Context(), caller(r), id, in, isPartial(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newPostResponse(post), http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PostService.Delete(r.Context(), caller(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
