// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set of a JWT access token issued by the
// OAuth2 authorization server for this API.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Username is an optional claim naming the account. It is used to
	// resolve the caller when the subject is not a user id.
	Username string `json:"username,omitempty"`
}

// Token wraps a JWT access token with convenience accessors.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [AccessClaims] for claim access (subject, expiry, username).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	AccessClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
