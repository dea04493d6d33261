// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// Plain text answers of the emailed links. They are read by people who
// clicked a link, not by API clients.
const (
	msgActivationConfirmed = "Thank you for your email confirmation!"
	msgActivationExpired   = "Activation link is invalid! Possibly it has expired! " +
		"Email confirmation failed and the pending account has been deleted. Register again!"
	msgLinkInvalid      = "Activation link is invalid!"
	msgPasswordVerified = "Password Changed Successfully!"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	user, err := h.services.AccountService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	utils.WriteJSON(w, models.RegisterResponse{Username: user.Username, Email: user.Email}, http.StatusCreated)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	outcome, err := h.services.AccountService.Activate(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "token"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.activate").Msg("error following activation link")
		utils.WriteText(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	switch outcome {
	case models.LinkConfirmed:
		utils.WriteText(w, msgActivationConfirmed, http.StatusOK)
	case models.LinkExpired:
		utils.WriteText(w, msgActivationExpired, http.StatusBadRequest)
	default:
		utils.WriteText(w, msgLinkInvalid, http.StatusBadRequest)
	}
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.resetPassword").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	user, err := h.services.AccountService.ResetPassword(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ResetPasswordResponse{Email: user.Email}, http.StatusCreated)
}

func (h *Handler) verifyPasswordReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	outcome, err := h.services.AccountService.VerifyPasswordReset(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "token"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyPasswordReset").Msg("error following password reset link")
		utils.WriteText(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if outcome != models.LinkConfirmed {
		utils.WriteText(w, msgLinkInvalid, http.StatusBadRequest)
		return
	}
	utils.WriteText(w, msgPasswordVerified, http.StatusOK)
}
