// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

// Field name constants. They are the JSON names reported in
// [FieldErrors] and the names accepted as required fields by
// [Validator.Validate].
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPassword2 = "password2"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldAbout     = "about"
	FieldCountry   = "country"
	FieldTitle     = "title"
	FieldBody      = "body"
)

// Length limits of stored fields.
const (
	maxUsernameLength = 150
	maxNameLength     = 150
	maxEmailLength    = 254
	maxAboutLength    = 254
	maxTitleLength    = 100
)
