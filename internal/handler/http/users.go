// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

const (
	imageFormField = "image"

	// multipartMemory is the part of a multipart body kept in memory,
	// the rest is buffered in temporary files.
	multipartMemory = 8 << 20

	msgNotAFile = "The submitted data was not a file. Check the encoding type on the form."
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newUserListItems(users), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newUserDetail(user), http.StatusOK)
}

// updateUser serves PUT (full update) and PATCH (partial update) of a
// profile. Read-only fields in the body are ignored.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var upd models.UserUpdate
	if err = decodeJSON(w, r, &upd); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("error decoding request body")
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), caller(r), id, upd, isPartial(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newUserDetail(user), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), caller(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUserImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetImage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserImage{Image: imageURL(user)}, http.StatusOK)
}

// setUserImage replaces the avatar with the "image" file of a multipart
// form. A form without that file leaves the avatar as it is.
func (h *Handler) setUserImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	upload, closeUpload, err := h.readImageUpload(w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.setUserImage").Msg("error reading image upload")
		writeError(w, r, err)
		return
	}
	defer closeUpload()

	user, err := h.services.UserService.SetImage(r.Context(), caller(r), id, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserImage{Image: imageURL(user)}, http.StatusOK)
}

func (h *Handler) deleteUserImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteImage(r.Context(), caller(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readImageUpload extracts the avatar file from the body of r. The
// returned upload has no content when the form carries no file. The
// returned func releases the file and must always be called.
func (h *Handler) readImageUpload(w http.ResponseWriter, r *http.Request) (models.ImageUpload, func(), error) {
	noop := func() {}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" && r.ContentLength <= 0 {
		return models.ImageUpload{}, noop, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return models.ImageUpload{}, noop, fmt.Errorf("%w %q", ErrUnsupportedMediaType, contentType)
	}

	if h.media.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.media.MaxUploadSize+multipartMemory)
	}

	switch mediaType {
	case "multipart/form-data":
		if err = r.ParseMultipartForm(multipartMemory); err != nil {
			return models.ImageUpload{}, noop, formError(err)
		}

		file, header, err := r.FormFile(imageFormField)
		if errors.Is(err, http.ErrMissingFile) {
			if r.PostFormValue(imageFormField) != "" {
				return models.ImageUpload{}, noop, service.NewValidationError(imageFormField, msgNotAFile)
			}
			return models.ImageUpload{}, noop, nil
		}
		if err != nil {
			return models.ImageUpload{}, noop, formError(err)
		}

		upload := models.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		}
		return upload, func() { file.Close() }, nil

	case "application/x-www-form-urlencoded":
		if err = r.ParseForm(); err != nil {
			return models.ImageUpload{}, noop, formError(err)
		}
		if r.PostForm.Get(imageFormField) != "" {
			return models.ImageUpload{}, noop, service.NewValidationError(imageFormField, msgNotAFile)
		}
		return models.ImageUpload{}, noop, nil
	}

	return models.ImageUpload{}, noop, fmt.Errorf("%w %q", ErrUnsupportedMediaType, mediaType)
}

func formError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return service.NewValidationError(imageFormField, service.MsgImageTooLarge)
	}
	return fmt.Errorf("%w: %w", ErrMalformedForm, err)
}
