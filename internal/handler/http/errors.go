// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request decoding. Callers can match against them with
// [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned when a "Bearer" Authorization
	// header does not carry exactly one token.
	ErrInvalidAuthorizationHeader = errors.New("invalid token header, no credentials provided")

	// ErrMalformedJSON is returned when a request body is not valid JSON.
	ErrMalformedJSON = errors.New("JSON parse error")

	// ErrMalformedGzip is returned when a body sent with
	// "Content-Encoding: gzip" is not a gzip stream.
	ErrMalformedGzip = errors.New("gzip parse error")

	// ErrMalformedForm is returned when a form body cannot be parsed.
	ErrMalformedForm = errors.New("form parse error")

	// ErrUnsupportedMediaType is returned when the body encoding does not
	// fit the endpoint.
	ErrUnsupportedMediaType = errors.New("unsupported media type in request")

	// ErrNotFound is returned for unknown routes and malformed identifiers.
	ErrNotFound = errors.New("not found")
)
