// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/tokens"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// accountService is the concrete implementation of AccountService.
//
// Emailed links carry the URL-safe encoded user id and a token made by
// signer. Tokens are bound to the active flag, the first activation time
// and the password hash of the user, so activating the account or storing a
// new password invalidates every link issued before it.
type accountService struct {
	users     store.UserRepository
	images    store.ImageStorage
	validator validators.Validator
	signer    *tokens.Signer
	notifier  Notifier

	// hashCost is the bcrypt cost of new password hashes.
	hashCost int

	logger *logger.Logger
}

// NewAccountService constructs an AccountService. images may be nil when
// no avatar storage is configured.
func NewAccountService(
	users store.UserRepository,
	images store.ImageStorage,
	validator validators.Validator,
	signer *tokens.Signer,
	notifier Notifier,
	cfg config.App,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		users:     users,
		images:    images,
		validator: validator,
		signer:    signer,
		notifier:  notifier,
		hashCost:  cfg.PasswordHashCost,
		logger:    logger,
	}
}

// Register validates req, stores an inactive user and mails the
// activation link.
//
// A failure to send the message does not remove the stored user; the error
// then wraps ErrNotificationFailed.
func (s *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.newUser(ctx, req)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.create(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	token := s.signer.Make(tokens.PurposeActivation, created)
	if err = s.notifier.SendAccountActivation(ctx, created, tokens.EncodeUID(created.ID), token); err != nil {
		log.Err(err).Str("func", "*accountService.Register").Str("user_id", created.ID.String()).Msg("error sending activation email")
		return created, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info().Str("user_id", created.ID.String()).Msg("user registered")
	return created, nil
}

// Activate verifies an activation link.
//
// Undecodable ids and unknown users yield LinkInvalid. A link that does not
// verify for a user who has never been activated deletes that user and
// yields LinkExpired. For any other user, including one deactivated by a
// password reset, it yields LinkInvalid and changes nothing.
func (s *accountService) Activate(ctx context.Context, uid, token string) (models.LinkOutcome, error) {
	log := logger.FromContext(ctx)

	user, ok, err := s.userFromUID(ctx, uid)
	if err != nil || !ok {
		return models.LinkInvalid, err
	}

	if s.signer.Check(tokens.PurposeActivation, user, token) {
		if err = s.users.SetActive(ctx, user.ID, true); err != nil {
			log.Err(err).Str("func", "*accountService.Activate").Msg("error activating user")
			return models.LinkInvalid, fmt.Errorf("error activating user: %w", err)
		}
		log.Info().Str("user_id", user.ID.String()).Msg("user activated")
		return models.LinkConfirmed, nil
	}

	if user.IsActive || user.WasActivated() {
		return models.LinkInvalid, nil
	}

	if err = s.users.Delete(ctx, user.ID); err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "*accountService.Activate").Msg("error deleting unconfirmed user")
		return models.LinkInvalid, fmt.Errorf("error deleting unconfirmed user: %w", err)
	}
	deleteImage(ctx, s.images, user)

	log.Info().Str("user_id", user.ID.String()).Msg("unconfirmed user deleted")
	return models.LinkExpired, nil
}

// ResetPassword stores the new password of the user owning req.Email,
// deactivates the account and mails the confirmation link.
func (s *accountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, asValidationError(err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, NewValidationError("error", MsgNoMatchingAccount)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error looking up user by email: %w", err)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	if err = s.users.SetPassword(ctx, user.ID, hash, false); err != nil {
		log.Err(err).Str("func", "*accountService.ResetPassword").Msg("error storing new password")
		return models.User{}, fmt.Errorf("error storing new password: %w", err)
	}
	user.PasswordHash = hash
	user.IsActive = false

	token := s.signer.Make(tokens.PurposePasswordReset, user)
	if err = s.notifier.SendPasswordReset(ctx, user, tokens.EncodeUID(user.ID), token); err != nil {
		log.Err(err).Str("func", "*accountService.ResetPassword").Str("user_id", user.ID.String()).Msg("error sending password reset email")
		return user, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	return user, nil
}

// VerifyPasswordReset reactivates the user when the reset link verifies.
// It never deletes users.
func (s *accountService) VerifyPasswordReset(ctx context.Context, uid, token string) (models.LinkOutcome, error) {
	user, ok, err := s.userFromUID(ctx, uid)
	if err != nil || !ok {
		return models.LinkInvalid, err
	}

	if !s.signer.Check(tokens.PurposePasswordReset, user, token) {
		return models.LinkInvalid, nil
	}

	if err = s.users.SetActive(ctx, user.ID, true); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.VerifyPasswordReset").Msg("error reactivating user")
		return models.LinkInvalid, fmt.Errorf("error reactivating user: %w", err)
	}

	return models.LinkConfirmed, nil
}

// CreateUser stores an active user without sending any message.
func (s *accountService) CreateUser(ctx context.Context, req models.RegisterRequest, staff bool) (models.User, error) {
	user, err := s.newUser(ctx, req)
	if err != nil {
		return models.User{}, err
	}

	user.IsActive = true
	user.IsStaff = staff

	return s.create(ctx, user)
}

// newUser validates a registration request and returns the inactive user
// it describes, with the password already hashed.
//
// Field rules are checked first, then the uniqueness of email and
// username, and the password confirmation last.
func (s *accountService) newUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	fields := map[string][]string{}
	if err := s.validator.Validate(ctx, req); err != nil {
		var fieldErrors validators.FieldErrors
		if !errors.As(err, &fieldErrors) {
			return models.User{}, fmt.Errorf("error validating registration: %w", err)
		}
		maps.Copy(fields, fieldErrors)
	}

	if _, invalid := fields["email"]; !invalid {
		taken, err := s.taken(ctx, s.users.GetByEmail, req.Email)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			fields["email"] = []string{MsgEmailNotUnique}
		}
	}

	if _, invalid := fields["username"]; !invalid {
		taken, err := s.taken(ctx, s.users.GetByUsername, req.Username)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			fields["username"] = []string{MsgUsernameNotUnique}
		}
	}

	if len(fields) == 0 && req.Password != req.Password2 {
		fields["password"] = []string{MsgPasswordsMismatch}
	}

	if len(fields) > 0 {
		return models.User{}, &ValidationError{Fields: fields}
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}, nil
}

// create stores user, reporting unique violations that slipped past the
// lookups in newUser as validation errors.
func (s *accountService) create(ctx context.Context, user models.User) (models.User, error) {
	created, err := s.users.Create(ctx, user)
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, NewValidationError("email", MsgEmailNotUnique)
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.User{}, NewValidationError("username", MsgUsernameNotUnique)
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.create").Msg("error creating user")
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

func (s *accountService) taken(ctx context.Context, lookup func(context.Context, string) (models.User, error), value string) (bool, error) {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrUserNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("error checking uniqueness: %w", err)
	}
}

func (s *accountService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// userFromUID resolves the encoded user id of an emailed link. ok is false
// when the id does not decode or names no user.
func (s *accountService) userFromUID(ctx context.Context, uid string) (user models.User, ok bool, err error) {
	id, err := tokens.DecodeUID(uid)
	if err != nil {
		return models.User{}, false, nil
	}

	user, err = s.users.GetByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("error looking up user: %w", err)
	}

	return user, true, nil
}

// deleteImage removes the avatar asset of user, logging failures only.
func deleteImage(ctx context.Context, images store.ImageStorage, user models.User) {
	if images == nil || !user.HasImage() {
		return
	}
	if err := images.Delete(ctx, user.Image); err != nil {
		logger.FromContext(ctx).Err(err).Str("image", user.Image).Msg("error deleting avatar asset")
	}
}
