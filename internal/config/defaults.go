package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	defaultHTTPAddress            = "localhost:3001"
	defaultRequestTimeout         = 30 * time.Second
	defaultRateLimit              = 100
	defaultStorageMode            = StorageModeFile
	defaultDataDir                = "data"
	defaultMaxOpenConns           = 10
	defaultConnMaxLifetime        = 30 * time.Minute
	defaultOTPLength              = 6
	defaultOTPTTL                 = 10 * time.Minute
	defaultOTPMaxAttempts         = 3
	defaultAuditRetention         = 500
	defaultTokenIssuer            = "go-erp-auth"
	defaultTokenDuration          = 24 * time.Hour
	defaultVersion                = "dev"
	defaultEmailMode              = EmailModeLog
	defaultEmailFrom              = "no-reply@localhost"
	defaultEmailTimeout           = 10 * time.Second
	defaultMaxLoginAttempts       = 5
	defaultLoginWindow            = 15 * time.Minute
	defaultOTPSweepInterval       = 5 * time.Minute
	defaultAuditRetentionInterval = time.Hour
)

// applyDefaults fills every zero-valued setting that has a sensible default.
// An empty token sign key is replaced with a random one.
func (cfg *StructuredConfig) applyDefaults() error {
	setDefault(&cfg.Server.HTTPAddress, defaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, defaultRequestTimeout)
	setDefault(&cfg.Server.RateLimit, defaultRateLimit)

	setDefault(&cfg.Storage.Mode, defaultStorageMode)
	switch cfg.Storage.Mode {
	case StorageModeFile:
		setDefault(&cfg.Storage.Files.DataDir, defaultDataDir)
	case StorageModePostgres:
		setDefault(&cfg.Storage.DB.MaxOpenConns, defaultMaxOpenConns)
		setDefault(&cfg.Storage.DB.ConnMaxLifetime, defaultConnMaxLifetime)
	}

	setDefault(&cfg.App.OTPLength, defaultOTPLength)
	setDefault(&cfg.App.OTPTTL, defaultOTPTTL)
	setDefault(&cfg.App.OTPMaxAttempts, defaultOTPMaxAttempts)
	setDefault(&cfg.App.AuditRetention, defaultAuditRetention)
	setDefault(&cfg.App.TokenIssuer, defaultTokenIssuer)
	setDefault(&cfg.App.TokenDuration, defaultTokenDuration)
	setDefault(&cfg.App.Version, defaultVersion)

	setDefault(&cfg.Adapter.Email.Mode, defaultEmailMode)
	setDefault(&cfg.Adapter.Email.From, defaultEmailFrom)
	setDefault(&cfg.Adapter.Email.RequestTimeout, defaultEmailTimeout)
	setDefault(&cfg.Adapter.Redis.MaxLoginAttempts, defaultMaxLoginAttempts)
	setDefault(&cfg.Adapter.Redis.LoginWindow, defaultLoginWindow)

	setDefault(&cfg.Workers.OTPSweepInterval, defaultOTPSweepInterval)
	setDefault(&cfg.Workers.AuditRetentionInterval, defaultAuditRetentionInterval)

	if cfg.App.TokenSignKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("error generating token sign key: %w", err)
		}
		cfg.App.TokenSignKey = hex.EncodeToString(key)
	}

	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
