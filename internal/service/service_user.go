// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// imageContentTypes maps the formats accepted for avatars to the content
// type they are stored with.
var imageContentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

type userService struct {
	users     store.UserRepository
	images    store.ImageStorage
	validator validators.Validator

	maxUploadSize int64

	logger *logger.Logger
}

func NewUserService(
	users store.UserRepository,
	images store.ImageStorage,
	validator validators.Validator,
	cfg config.Media,
	logger *logger.Logger,
) UserService {
	return &userService{
		users:         users,
		images:        images,
		validator:     validator,
		maxUploadSize: cfg.MaxUploadSize,
		logger:        logger,
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}
	return s.withImageURL(ctx, user)
}

// Update checks ownership before validating upd, so a caller without
// write access learns nothing about the validity of its input.
func (s *userService) Update(ctx context.Context, caller models.Identity, id uuid.UUID, upd models.UserUpdate, partial bool) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}
	if err = CanWriteUser(caller, user.ID); err != nil {
		return models.User{}, err
	}

	upd = trimUserUpdate(upd)

	var required []string
	if !partial {
		required = []string{validators.FieldUsername}
	}
	if err = s.validator.Validate(ctx, upd, required...); err != nil {
		return models.User{}, asValidationError(err)
	}

	applyUserUpdate(&user, upd, partial)

	updated, err := s.users.Update(ctx, user)
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		return models.User{}, NewValidationError(validators.FieldUsername, MsgUsernameNotUnique)
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.Update").Str("user_id", id.String()).Msg("error updating user")
		return models.User{}, fmt.Errorf("error updating user: %w", err)
	}

	return s.withImageURL(ctx, updated)
}

// Delete removes the user together with its posts and comments. The
// avatar asset is removed afterwards on a best effort basis.
func (s *userService) Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if err = CanWriteUser(caller, user.ID); err != nil {
		return err
	}

	if err = s.users.Delete(ctx, user.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Delete").Str("user_id", id.String()).Msg("error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	deleteImage(ctx, s.images, user)

	return nil
}

func (s *userService) GetImage(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.Get(ctx, id)
}

// SetImage replaces the avatar of user id with upload.
//
// The upload is accepted only if it decodes as a JPEG, PNG or GIF image
// and is not larger than the configured limit. The previous asset is
// deleted once the new reference is stored.
func (s *userService) SetImage(ctx context.Context, caller models.Identity, id uuid.UUID, upload models.ImageUpload) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}
	if err = CanWriteUser(caller, user.ID); err != nil {
		return models.User{}, err
	}

	// no file submitted, the avatar stays as it is
	if upload.Content == nil {
		return s.withImageURL(ctx, user)
	}

	content, format, err := s.readImage(upload.Content)
	if err != nil {
		return models.User{}, err
	}

	key := fmt.Sprintf("users/%s/%s.%s", user.ID, utils.NewID(), format)
	if err = s.images.Save(ctx, key, bytes.NewReader(content), imageContentTypes[format]); err != nil {
		log.Err(err).Str("func", "*userService.SetImage").Str("key", key).Msg("error saving avatar")
		return models.User{}, fmt.Errorf("error saving avatar: %w", err)
	}

	if err = s.users.SetImage(ctx, user.ID, key); err != nil {
		log.Err(err).Str("func", "*userService.SetImage").Str("user_id", id.String()).Msg("error storing avatar reference")
		deleteImage(ctx, s.images, models.User{Image: key})
		return models.User{}, fmt.Errorf("error storing avatar reference: %w", err)
	}

	deleteImage(ctx, s.images, user)

	user.Image = key
	return s.withImageURL(ctx, user)
}

// DeleteImage removes the avatar asset and then clears the reference.
// Both steps are not atomic; a failure in between leaves a dangling
// reference.
func (s *userService) DeleteImage(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if err = CanWriteUser(caller, user.ID); err != nil {
		return err
	}

	if !user.HasImage() {
		return nil
	}

	if err = s.images.Delete(ctx, user.Image); err != nil {
		log.Err(err).Str("func", "*userService.DeleteImage").Str("key", user.Image).Msg("error deleting avatar")
		return fmt.Errorf("error deleting avatar: %w", err)
	}

	if err = s.users.SetImage(ctx, user.ID, ""); err != nil {
		log.Err(err).Str("func", "*userService.DeleteImage").Str("user_id", id.String()).Msg("error clearing avatar reference")
		return fmt.Errorf("error clearing avatar reference: %w", err)
	}

	return nil
}

// readImage reads at most maxUploadSize bytes of r and detects the image
// format from its header.
func (s *userService) readImage(r io.Reader) ([]byte, string, error) {
	content, err := io.ReadAll(io.LimitReader(r, s.maxUploadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("error reading upload: %w", err)
	}
	if int64(len(content)) > s.maxUploadSize {
		return nil, "", NewValidationError("image", MsgImageTooLarge)
	}
	if len(content) == 0 {
		return nil, "", NewValidationError("image", MsgNoFile)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, "", NewValidationError("image", MsgInvalidImage)
	}
	if _, ok := imageContentTypes[format]; !ok {
		return nil, "", NewValidationError("image", MsgInvalidImage)
	}

	return content, format, nil
}

func (s *userService) withImageURL(ctx context.Context, user models.User) (models.User, error) {
	if !user.HasImage() || s.images == nil {
		return user, nil
	}

	url, err := s.images.URL(ctx, user.Image)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("key", user.Image).Msg("error resolving avatar url")
		return models.User{}, fmt.Errorf("error resolving avatar url: %w", err)
	}
	user.ImageURL = url

	return user, nil
}

// applyUserUpdate copies the fields of upd onto user. A full update clears
// the optional fields upd leaves out.
func applyUserUpdate(user *models.User, upd models.UserUpdate, partial bool) {
	set := func(dst *string, src *string) {
		switch {
		case src != nil:
			*dst = *src
		case !partial:
			*dst = ""
		}
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	set(&user.FirstName, upd.FirstName)
	set(&user.LastName, upd.LastName)
	set(&user.About, upd.About)
	set(&user.Country, upd.Country)
}

func trimUserUpdate(upd models.UserUpdate) models.UserUpdate {
	return models.UserUpdate{
		Username:  trimmed(upd.Username),
		FirstName: trimmed(upd.FirstName),
		LastName:  trimmed(upd.LastName),
		Country:   trimmed(upd.Country),
		About:     trimmed(upd.About),
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
