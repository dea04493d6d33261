// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailer renders the account e-mails of the blog and hands them
// to a mail transport.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
)

//go:generate mockgen -source=transport.go -destination=../mock/mailer_mock.go -package=mock

// Transport delivers a single plain-text message.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewTransport returns the transport selected by cfg.Transport.
func NewTransport(cfg config.Mail, log *logger.Logger) (Transport, error) {
	switch cfg.Transport {
	case config.MailTransportSMTP:
		return NewSMTPTransport(cfg), nil
	case config.MailTransportLog:
		return NewLogTransport(cfg.From, log), nil
	default:
		return nil, fmt.Errorf("unsupported mail transport %q", cfg.Transport)
	}
}

// SMTPTransport sends messages through an SMTP relay. A new connection is
// dialed for every message.
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	from     string
	policy   mail.TLSPolicy
	timeout  time.Duration
}

// NewSMTPTransport builds an SMTPTransport from cfg.
func NewSMTPTransport(cfg config.Mail) *SMTPTransport {
	return &SMTPTransport{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		policy:   tlsPolicy(cfg.TLSPolicy),
		timeout:  cfg.Timeout,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, to, subject, body string) error {
	log := logger.FromContext(ctx)

	msg, err := t.message(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.host, t.options()...)
	if err != nil {
		log.Err(err).Str("func", "*SMTPTransport.Send").Msg("error creating smtp client")
		return fmt.Errorf("error creating smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Err(err).Str("func", "*SMTPTransport.Send").Str("to", to).Msg("error sending mail")
		return fmt.Errorf("error sending mail: %w", err)
	}

	log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}

func (t *SMTPTransport) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(t.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

func (t *SMTPTransport) options() []mail.Option {
	opts := []mail.Option{
		mail.WithTLSPolicy(t.policy),
	}
	if t.port > 0 {
		opts = append(opts, mail.WithPort(t.port))
	}
	if t.timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.timeout))
	}
	if t.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.username),
			mail.WithPassword(t.password),
		)
	}

	return opts
}

func tlsPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "none":
		return mail.NoTLS
	case "opportunistic":
		return mail.TLSOpportunistic
	default:
		return mail.TLSMandatory
	}
}

// LogTransport writes messages to the logger instead of sending them.
// It is meant for development setups without a mail relay.
type LogTransport struct {
	from   string
	logger *logger.Logger
}

// NewLogTransport returns a LogTransport writing to log.
func NewLogTransport(from string, log *logger.Logger) *LogTransport {
	return &LogTransport{from: from, logger: log}
}

func (t *LogTransport) Send(ctx context.Context, to, subject, body string) error {
	t.logger.Info().
		Str("from", t.from).
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail")
	return nil
}
