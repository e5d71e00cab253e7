// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-erp-auth server. It aggregates all sub-configurations and is populated
// by merging values from a .env file, environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds business policy: OTP parameters, login policy, audit
	// retention and session token settings.
	App App `envPrefix:"APP_"`

	// Storage selects the persistence backend and holds its settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and edge protection settings
	// for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings for outbound integrations: email delivery
	// and the Redis instance used for login throttling.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds intervals of background housekeeping workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage modes accepted by [Storage.Mode].
const (
	StorageModePostgres = "postgres"
	StorageModeSQLite   = "sqlite"
	StorageModeFile     = "file"
)

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// Mode is one of "postgres", "sqlite" or "file".
	// Env: STORAGE_MODE
	Mode string `env:"MODE"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the flat-file store settings.
	Files Files `envPrefix:"FILES_"`
}

// App holds application-level configuration values that control the
// authentication policy and token lifecycle.
type App struct {
	// OTPLength is the number of digits of a one-time code.
	// Env: APP_OTP_LENGTH
	OTPLength int `env:"OTP_LENGTH"`

	// OTPTTL is the validity window of a one-time code.
	// Env: APP_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// OTPMaxAttempts is the number of codes a user may submit before the
	// pending OTP is discarded.
	// Env: APP_OTP_MAX_ATTEMPTS
	OTPMaxAttempts int `env:"OTP_MAX_ATTEMPTS"`

	// OTPOnEveryLogin selects the login policy: when true every successful
	// credential check requires an OTP, otherwise only unverified users do.
	// Env: APP_OTP_ON_EVERY_LOGIN
	OTPOnEveryLogin bool `env:"OTP_ON_EVERY_LOGIN"`

	// AuditRetention is the number of most recent audit events kept.
	// Env: APP_AUDIT_RETENTION
	AuditRetention int `env:"AUDIT_RETENTION"`

	// TokenSignKey is the secret key used to sign and verify session tokens.
	// A random key is generated when empty, so tokens do not survive restarts.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// ProtectAdminRoutes requires an admin session token on employee and
	// audit routes.
	// Env: APP_PROTECT_ADMIN_ROUTES
	ProtectAdminRoutes bool `env:"PROTECT_ADMIN_ROUTES"`

	// LogLevel is the minimum zerolog level (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and edge settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CORSOrigins lists the origins allowed to call the API.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// RateLimit is the number of API requests accepted per IP per minute.
	// Env: SERVER_RATE_LIMIT
	RateLimit int `env:"RATE_LIMIT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string or the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the PostgreSQL pool. SQLite always uses one
	// connection.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`

	// ConnMaxLifetime recycles pooled connections.
	// Env: STORAGE_DB_CONN_MAX_LIFETIME
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"`
}

// Files holds settings of the flat-file store.
type Files struct {
	// DataDir is the directory holding one JSON file per collection.
	// Env: STORAGE_FILES_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Email delivery modes accepted by [Email.Mode].
const (
	EmailModeLog  = "log"
	EmailModeSMTP = "smtp"
	EmailModeHTTP = "http"
)

// Adapter holds configuration for outbound integrations.
type Adapter struct {
	Email Email `envPrefix:"EMAIL_"`
	Redis Redis `envPrefix:"REDIS_"`
}

// Email configures the notification dispatcher.
type Email struct {
	// Mode is one of "log", "smtp" or "http".
	// Env: ADAPTER_EMAIL_MODE
	Mode string `env:"MODE"`

	// From is the sender address.
	From string `env:"FROM"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// APIURL is the endpoint of an HTTP email provider.
	APIURL string `env:"API_URL"`
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds a single delivery call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Redis configures the optional failed-login throttle. The throttle is
// disabled when Address is empty.
type Redis struct {
	Address  string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`

	// MaxLoginAttempts is the number of failed logins tolerated per window.
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS"`

	// LoginWindow is the fixed window of the failed-login counter.
	LoginWindow time.Duration `env:"LOGIN_WINDOW"`
}

// Workers holds intervals of background workers. A zero interval disables
// the worker.
type Workers struct {
	OTPSweepInterval       time.Duration `env:"OTP_SWEEP_INTERVAL"`
	AuditRetentionInterval time.Duration `env:"AUDIT_RETENTION_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables, where a .env file fills in unset variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
