// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/MKhiriev/go-blog-api/models"
)

const (
	tagUsername = "username"
	tagCountry  = "country"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// BlogValidator implements [Validator] for the account and content inputs
// of the blog: registration, password reset, profile updates, posts and
// comments.
type BlogValidator struct {
	validate *validator.Validate
}

// NewBlogValidator constructs a BlogValidator with the custom "username"
// and "country" tags registered.
func NewBlogValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(tagUsername, func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(tagCountry, func(fl validator.FieldLevel) bool {
		return isCountryCode(fl.Field().String())
	})

	return &BlogValidator{validate: v}
}

// Validate dispatches validation on the dynamic type of obj. Both value
// and pointer forms are accepted.
//
// For the partial-update inputs ([models.UserUpdate], [models.PostInput],
// [models.CommentInput]) fields names the fields that must be present;
// absent fields are otherwise left alone. Registration and password reset
// inputs always require every field.
//
// An invalid input yields [FieldErrors].
func (v *BlogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegistration(ctx, value)
	case *models.RegisterRequest:
		return v.validateRegistration(ctx, *value)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(ctx, value)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(ctx, *value)

	case models.UserUpdate:
		return v.validateUserUpdate(ctx, value, fields...)
	case *models.UserUpdate:
		return v.validateUserUpdate(ctx, *value, fields...)

	case models.PostInput:
		return v.validatePostInput(ctx, value, fields...)
	case *models.PostInput:
		return v.validatePostInput(ctx, *value, fields...)

	case models.CommentInput:
		return v.validateCommentInput(ctx, value, fields...)
	case *models.CommentInput:
		return v.validateCommentInput(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *BlogValidator) validateRegistration(_ context.Context, req models.RegisterRequest) error {
	errs := FieldErrors{}

	if v.required(errs, FieldUsername, req.Username) {
		v.check(errs, FieldUsername, req.Username, fmt.Sprintf("max=%d,%s", maxUsernameLength, tagUsername))
	}
	if v.required(errs, FieldEmail, req.Email) {
		v.check(errs, FieldEmail, req.Email, fmt.Sprintf("max=%d,email", maxEmailLength))
	}
	if v.required(errs, FieldPassword, req.Password) {
		errs.add(FieldPassword, passwordProblems(req.Password,
			passwordAttribute{name: "username", value: req.Username},
			passwordAttribute{name: "email address", value: req.Email},
		)...)
	}
	v.required(errs, FieldPassword2, req.Password2)

	return errs.orNil()
}

func (v *BlogValidator) validateResetPassword(_ context.Context, req models.ResetPasswordRequest) error {
	errs := FieldErrors{}

	if v.required(errs, FieldEmail, req.Email) {
		v.check(errs, FieldEmail, req.Email, fmt.Sprintf("max=%d,email", maxEmailLength))
	}
	if v.required(errs, FieldPassword, req.Password) {
		errs.add(FieldPassword, passwordProblems(req.Password,
			passwordAttribute{name: "email address", value: req.Email},
		)...)
	}

	return errs.orNil()
}

func (v *BlogValidator) validateUserUpdate(_ context.Context, upd models.UserUpdate, required ...string) error {
	if err := knownFields(required, FieldUsername, FieldFirstName, FieldLastName, FieldAbout, FieldCountry); err != nil {
		return err
	}
	errs := FieldErrors{}

	if v.present(errs, FieldUsername, upd.Username, required) && v.notBlank(errs, FieldUsername, *upd.Username) {
		v.check(errs, FieldUsername, *upd.Username, fmt.Sprintf("max=%d,%s", maxUsernameLength, tagUsername))
	}
	if v.present(errs, FieldFirstName, upd.FirstName, required) {
		v.check(errs, FieldFirstName, *upd.FirstName, fmt.Sprintf("max=%d", maxNameLength))
	}
	if v.present(errs, FieldLastName, upd.LastName, required) {
		v.check(errs, FieldLastName, *upd.LastName, fmt.Sprintf("max=%d", maxNameLength))
	}
	if v.present(errs, FieldAbout, upd.About, required) {
		v.check(errs, FieldAbout, *upd.About, fmt.Sprintf("max=%d", maxAboutLength))
	}
	if v.present(errs, FieldCountry, upd.Country, required) {
		v.check(errs, FieldCountry, *upd.Country, "omitempty,"+tagCountry)
	}

	return errs.orNil()
}

func (v *BlogValidator) validatePostInput(_ context.Context, in models.PostInput, required ...string) error {
	if err := knownFields(required, FieldTitle, FieldBody); err != nil {
		return err
	}
	errs := FieldErrors{}

	if v.present(errs, FieldTitle, in.Title, required) && v.notBlank(errs, FieldTitle, *in.Title) {
		v.check(errs, FieldTitle, *in.Title, fmt.Sprintf("max=%d", maxTitleLength))
	}
	if v.present(errs, FieldBody, in.Body, required) {
		v.notBlank(errs, FieldBody, *in.Body)
	}

	return errs.orNil()
}

func (v *BlogValidator) validateCommentInput(_ context.Context, in models.CommentInput, required ...string) error {
	if err := knownFields(required, FieldBody); err != nil {
		return err
	}
	errs := FieldErrors{}

	if v.present(errs, FieldBody, in.Body, required) {
		v.notBlank(errs, FieldBody, *in.Body)
	}

	return errs.orNil()
}

// check runs the go-playground tag against value and records failures.
func (v *BlogValidator) check(errs FieldErrors, field, value, tag string) {
	err := v.validate.Var(value, tag)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			errs.add(field, message(fe))
		}
	}
}

// required records a missing value and reports whether value is set.
func (v *BlogValidator) required(errs FieldErrors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs.add(field, MsgRequired)
		return false
	}
	return true
}

// present reports whether an optional field was provided, recording an
// error when it is absent but required.
func (v *BlogValidator) present(errs FieldErrors, field string, value *string, required []string) bool {
	if value != nil {
		return true
	}
	if slices.Contains(required, field) {
		errs.add(field, MsgRequired)
	}
	return false
}

func (v *BlogValidator) notBlank(errs FieldErrors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs.add(field, MsgBlank)
		return false
	}
	return true
}

func knownFields(fields []string, allowed ...string) error {
	for _, f := range fields {
		if !slices.Contains(allowed, f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

// isCountryCode accepts assigned ISO 3166-1 alpha-2 codes in upper case.
func isCountryCode(code string) bool {
	if len(code) != 2 || strings.ToUpper(code) != code {
		return false
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return false
	}

	return region.String() == code && region.IsCountry() && !region.IsPrivateUse()
}
