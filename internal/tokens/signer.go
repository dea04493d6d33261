// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tokens issues and verifies the one-time tokens embedded in
// account activation and password reset links.
//
// Tokens are stateless: nothing is stored server side. A token binds a
// purpose, the user id and an expiry to the account state: the active flag,
// the first activation time and the password hash. It stops verifying as
// soon as any of them changes, so an activation link is spent by the
// activation and every link issued before a password change is void.
package tokens

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// Token purposes. A token made for one purpose never verifies for another.
const (
	PurposeActivation    = "account-activation"
	PurposePasswordReset = "password-reset"
)

// maxTokenLength bounds the input accepted by Check.
const maxTokenLength = 128

// Signer makes and checks purpose-bound tokens with HMAC-SHA256.
type Signer struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer whose tokens stay valid for ttl.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL reports how long issued tokens stay valid.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Make returns a token for purpose bound to the current state of user.
// The format is "<expiry, unix seconds in base 36>-<hex signature>".
func (s *Signer) Make(purpose string, user models.User) string {
	expiry := s.now().Add(s.ttl).Unix()
	return strconv.FormatInt(expiry, 36) + "-" + s.sign(purpose, user, expiry)
}

// Check reports whether token was made by Make for purpose and the current
// state of user and has not expired. Malformed, tampered, expired and
// foreign tokens are indistinguishable to the caller.
func (s *Signer) Check(purpose string, user models.User, token string) bool {
	if len(token) > maxTokenLength {
		return false
	}

	encodedExpiry, signature, ok := strings.Cut(token, "-")
	if !ok || encodedExpiry == "" || signature == "" {
		return false
	}

	expiry, err := strconv.ParseInt(encodedExpiry, 36, 64)
	if err != nil {
		return false
	}

	valid := utils.EqualHashes(s.sign(purpose, user, expiry), signature)
	return valid && s.now().Unix() <= expiry
}

func (s *Signer) sign(purpose string, user models.User, expiry int64) string {
	var activatedAt int64
	if user.ActivatedAt != nil {
		activatedAt = user.ActivatedAt.Unix()
	}

	fingerprint := fmt.Sprintf("%s|%s|%d|%t|%d|%s",
		purpose, user.ID, expiry, user.IsActive, activatedAt, user.PasswordHash)
	return utils.HashString(fingerprint, s.secret)
}

// EncodeUID encodes a user id for use as a URL path segment.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

// DecodeUID reverses EncodeUID. Trailing padding is tolerated.
func DecodeUID(encoded string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode uid: %w", err)
	}

	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode uid: %w", err)
	}

	return id, nil
}
