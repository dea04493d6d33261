// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Known values of the selector fields.
const (
	AuthModeJWT           = "jwt"
	AuthModeIntrospection = "introspection"

	MediaBackendFS = "fs"
	MediaBackendS3 = "s3"

	MailTransportSMTP = "smtp"
	MailTransportLog  = "log"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenExpiryDays:  3,
			PublicURL:        "http://localhost:8080",
			PasswordHashCost: 10,
			Version:          "dev",
			LogLevel:         "debug",
		},
		Auth: Auth{
			Mode:          AuthModeJWT,
			TokenDuration: time.Hour,
			Timeout:       5 * time.Second,
		},
		Storage: Storage{
			Media: Media{
				Backend:       MediaBackendFS,
				Dir:           "media",
				BaseURL:       "/media",
				PresignTTL:    15 * time.Minute,
				MaxUploadSize: 5 << 20,
			},
		},
		Mail: Mail{
			Transport: MailTransportLog,
			Port:      587,
			From:      "webmaster@localhost",
			TLSPolicy: "mandatory",
			Timeout:   10 * time.Second,
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
