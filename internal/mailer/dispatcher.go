// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/MKhiriev/go-blog-api/models"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Message subjects.
const (
	SubjectAccountActivation = "Activate Your Account"
	SubjectPasswordReset     = "Confirm Password Reset"
)

const (
	activationPath    = "/api/v1/activate/"
	passwordResetPath = "/api/v1/password_verify/"
)

// Dispatcher renders account messages and sends them through a Transport.
type Dispatcher struct {
	transport  Transport
	publicURL  string
	expiryDays int
	templates  *template.Template
}

type messageData struct {
	User       models.User
	Link       string
	UID        string
	Token      string
	ExpiryDays int
}

// NewDispatcher parses the embedded templates. Links in messages are built
// from publicURL, the externally visible base URL of the API.
func NewDispatcher(transport Transport, publicURL string, expiryDays int) (*Dispatcher, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("error parsing mail templates: %w", err)
	}

	return &Dispatcher{
		transport:  transport,
		publicURL:  strings.TrimRight(publicURL, "/"),
		expiryDays: expiryDays,
		templates:  tmpl,
	}, nil
}

// SendAccountActivation mails the activation link to a newly registered user.
func (d *Dispatcher) SendAccountActivation(ctx context.Context, user models.User, uid, token string) error {
	return d.send(ctx, user, "account_activation.txt", SubjectAccountActivation, activationPath, uid, token)
}

// SendPasswordReset mails the link confirming a password change.
func (d *Dispatcher) SendPasswordReset(ctx context.Context, user models.User, uid, token string) error {
	return d.send(ctx, user, "password_reset.txt", SubjectPasswordReset, passwordResetPath, uid, token)
}

func (d *Dispatcher) send(ctx context.Context, user models.User, name, subject, path, uid, token string) error {
	data := messageData{
		User:       user,
		Link:       d.link(path, uid, token),
		UID:        uid,
		Token:      token,
		ExpiryDays: d.expiryDays,
	}

	var body bytes.Buffer
	if err := d.templates.ExecuteTemplate(&body, name, data); err != nil {
		return fmt.Errorf("error rendering %s: %w", name, err)
	}

	return d.transport.Send(ctx, user.Email, subject, body.String())
}

func (d *Dispatcher) link(path, uid, token string) string {
	return d.publicURL + path + url.PathEscape(uid) + "/" + url.PathEscape(token) + "/"
}
