// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenExpiryDays <= 0 {
		return fmt.Errorf("%w: token expiry must be a positive number of days", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordHashCost < 4 || cfg.App.PasswordHashCost > 31 {
		return fmt.Errorf("%w: password hash cost must be within [4, 31]", ErrInvalidAppConfigs)
	}

	switch cfg.Auth.Mode {
	case AuthModeJWT:
		if cfg.Auth.TokenSignKey == "" {
			return fmt.Errorf("%w: token sign key is required in %q mode", ErrInvalidAuthConfigs, AuthModeJWT)
		}
	case AuthModeIntrospection:
		if cfg.Auth.IntrospectionURL == "" {
			return fmt.Errorf("%w: introspection url is required in %q mode", ErrInvalidAuthConfigs, AuthModeIntrospection)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidAuthConfigs, cfg.Auth.Mode)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Media.Backend {
	case MediaBackendFS:
		if cfg.Storage.Media.Dir == "" {
			return fmt.Errorf("%w: media directory is required", ErrInvalidMediaConfigs)
		}
	case MediaBackendS3:
		if cfg.Storage.Media.Bucket == "" || cfg.Storage.Media.Region == "" {
			return fmt.Errorf("%w: bucket and region are required", ErrInvalidMediaConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidMediaConfigs, cfg.Storage.Media.Backend)
	}
	if cfg.Storage.Media.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidMediaConfigs)
	}

	switch cfg.Mail.Transport {
	case MailTransportLog:
	case MailTransportSMTP:
		if cfg.Mail.Host == "" || cfg.Mail.From == "" {
			return fmt.Errorf("%w: host and sender are required", ErrInvalidMailConfigs)
		}
		if !slices.Contains([]string{"mandatory", "opportunistic", "none"}, cfg.Mail.TLSPolicy) {
			return fmt.Errorf("%w: unknown TLS policy %q", ErrInvalidMailConfigs, cfg.Mail.TLSPolicy)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidMailConfigs, cfg.Mail.Transport)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	return nil
}
