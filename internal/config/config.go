// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the blog
// API. It aggregates all sub-configurations and is populated by merging
// values from a .env file, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the link signing secret,
	// link expiry, the public URL used in emails and the version.
	App App `envPrefix:"APP_"`

	// Auth holds the settings used to validate OAuth2 bearer tokens.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for all persistence backends, including
	// the relational database and the avatar media store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Mail holds the outbound mail transport settings.
	Mail Mail `envPrefix:"MAIL_"`

	// Server holds network address, timeout and CORS settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the optional path to a .env file that is loaded into the
	// process environment before environment variables are parsed.
	// Populated via the DOTENV environment variable; defaults to ".env".
	DotEnvPath string `env:"DOTENV"`
}

// App holds application-level configuration values.
type App struct {
	// SecretKey signs account activation and password reset links.
	// Must be kept confidential.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// TokenExpiryDays is how many days an emailed link stays valid.
	// Env: APP_TOKEN_EXPIRY_DAYS
	TokenExpiryDays int `env:"TOKEN_EXPIRY_DAYS"`

	// PublicURL is the externally reachable base URL of the API
	// (e.g. "https://blog.example.com"). Links in emails are built on it.
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// PasswordHashCost is the bcrypt cost used for new password hashes.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimal zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth selects and configures the OAuth2 bearer token validator.
type Auth struct {
	// Mode is AuthModeJWT or AuthModeIntrospection.
	// Env: AUTH_MODE
	Mode string `env:"MODE"`

	// TokenSignKey is the HS256 key shared with the authorization server.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenAudience is the expected "aud" claim; empty disables the check.
	// Env: AUTH_TOKEN_AUDIENCE
	TokenAudience string `env:"TOKEN_AUDIENCE"`

	// TokenDuration is the lifetime of tokens minted by the admin tool.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// IntrospectionURL is the RFC 7662 token introspection endpoint.
	// Env: AUTH_INTROSPECTION_URL
	IntrospectionURL string `env:"INTROSPECTION_URL"`

	// ClientID and ClientSecret authenticate this API at the
	// introspection endpoint.
	// Env: AUTH_CLIENT_ID, AUTH_CLIENT_SECRET
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// Timeout bounds a single introspection call.
	// Env: AUTH_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Media holds the avatar image storage settings.
	Media Media `envPrefix:"MEDIA_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its form: "postgres://..." or
	// "postgresql://..." opens PostgreSQL through pgx, "sqlite://path",
	// "file:path" or a path ending in ".db"/".sqlite3" opens SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Media holds avatar storage settings.
type Media struct {
	// Backend is MediaBackendFS or MediaBackendS3.
	// Env: STORAGE_MEDIA_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the local directory for the fs backend.
	// Env: STORAGE_MEDIA_DIR
	Dir string `env:"DIR"`

	// BaseURL is the public URL prefix of files served by the fs backend.
	// Env: STORAGE_MEDIA_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Bucket, Region and Endpoint address the S3 compatible bucket.
	// Endpoint is optional and enables path-style addressing when set.
	// Env: STORAGE_MEDIA_BUCKET, STORAGE_MEDIA_REGION, STORAGE_MEDIA_ENDPOINT
	Bucket   string `env:"BUCKET"`
	Region   string `env:"REGION"`
	Endpoint string `env:"ENDPOINT"`

	// AccessKeyID and SecretAccessKey are static S3 credentials. When empty
	// the default AWS credential chain is used.
	// Env: STORAGE_MEDIA_ACCESS_KEY_ID, STORAGE_MEDIA_SECRET_ACCESS_KEY
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`

	// PresignTTL is the lifetime of presigned avatar URLs.
	// Env: STORAGE_MEDIA_PRESIGN_TTL
	PresignTTL time.Duration `env:"PRESIGN_TTL"`

	// MaxUploadSize is the largest accepted avatar in bytes.
	// Env: STORAGE_MEDIA_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Mail holds the outbound mail settings.
type Mail struct {
	// Transport is MailTransportSMTP or MailTransportLog.
	// Env: MAIL_TRANSPORT
	Transport string `env:"TRANSPORT"`

	// Host and Port address the SMTP relay.
	// Env: MAIL_HOST, MAIL_PORT
	Host string `env:"HOST"`
	Port int    `env:"PORT"`

	// Username and Password enable SMTP PLAIN authentication when set.
	// Env: MAIL_USERNAME, MAIL_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// From is the sender address of all outgoing messages.
	// Env: MAIL_FROM
	From string `env:"FROM"`

	// TLSPolicy is one of "mandatory", "opportunistic" or "none".
	// Env: MAIL_TLS_POLICY
	TLSPolicy string `env:"TLS_POLICY"`

	// Timeout bounds dialing and sending a single message.
	// Env: MAIL_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// AllowedOrigins lists the CORS origins allowed to call the API.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. For every field the first
// source that provides a non-zero value wins:
//  1. Environment variables (including those loaded from the .env file,
//     which never override variables already set in the process)
//  2. Command-line flags from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
