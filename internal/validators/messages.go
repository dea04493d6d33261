// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Messages returned to API clients.
const (
	MsgRequired         = "This field is required."
	MsgBlank            = "This field may not be blank."
	MsgInvalidEmail     = "Enter a valid email address."
	MsgInvalidUsername  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgPasswordTooShort = "This password is too short. It must contain at least 8 characters."
	MsgPasswordNumeric  = "This password is entirely numeric."
	MsgPasswordCommon   = "This password is too common."
)

func msgMaxLength(limit string) string {
	return fmt.Sprintf("Ensure this field has no more than %s characters.", limit)
}

func msgInvalidChoice(value any) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}

func msgTooSimilar(attribute string) string {
	return fmt.Sprintf("The password is too similar to the %s.", attribute)
}

// message translates a single go-playground validation failure.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return msgMaxLength(fe.Param())
	case "email":
		return MsgInvalidEmail
	case tagUsername:
		return MsgInvalidUsername
	case tagCountry:
		return msgInvalidChoice(fe.Value())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
