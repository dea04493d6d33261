// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=notifier.go -destination=../mock/notifier_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-blog-api/models"
)

// Notifier sends the account messages carrying signed links.
// It is implemented by *mailer.Dispatcher.
type Notifier interface {
	SendAccountActivation(ctx context.Context, user models.User, uid, token string) error
	SendPasswordReset(ctx context.Context, user models.User, uid, token string) error
}
