// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.services.CommentService.List(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newCommentResponses(comments), http.StatusOK)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in models.CommentInput
	if err = decodeJSON(w, r, &in); err != nil {
		log.Err(err).Str("func", "*Handler.createComment").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.Create(r.Context(), caller(r), postID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newCommentResponse(comment), http.StatusCreated)
}

func (h *Handler) getComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := commentPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.Get(r.Context(), postID, commentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newCommentResponse(comment), http.StatusOK)
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	postID, commentID, err := commentPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in models.CommentInput
	if err = decodeJSON(w, r, &in); err != nil {
		log.Err(err).Str("func", "*Handler.updateComment").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.Update(r.Context(), caller(r), postID, commentID, in, isPartial(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newCommentResponse(comment), http.StatusOK)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := commentPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.CommentService.Delete(r.Context(), caller(r), postID, commentID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func commentPath(r *http.Request) (postID, commentID uuid.UUID, err error) {
	if postID, err = pathID(r, "postID"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if commentID, err = pathID(r, "commentID"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return postID, commentID, nil
}
