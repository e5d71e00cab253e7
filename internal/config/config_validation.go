// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Mode {
	case StorageModePostgres, StorageModeSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s storage requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.Mode)
		}
	case StorageModeFile:
		if cfg.Storage.Files.DataDir == "" {
			return fmt.Errorf("%w: file storage requires a data directory", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown storage mode %q", ErrInvalidStorageConfigs, cfg.Storage.Mode)
	}

	if cfg.App.OTPLength < 4 || cfg.App.OTPLength > 10 {
		return fmt.Errorf("%w: OTP length must be between 4 and 10", ErrInvalidAppConfigs)
	}
	if cfg.App.OTPMaxAttempts < 1 {
		return fmt.Errorf("%w: OTP max attempts must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.OTPTTL <= 0 || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: OTP TTL and token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.AuditRetention < 1 {
		return fmt.Errorf("%w: audit retention must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	switch cfg.Adapter.Email.Mode {
	case EmailModeLog:
	case EmailModeSMTP:
		if cfg.Adapter.Email.SMTPHost == "" || cfg.Adapter.Email.SMTPPort == 0 {
			return fmt.Errorf("%w: smtp mode requires host and port", ErrInvalidAdapterConfigs)
		}
	case EmailModeHTTP:
		if cfg.Adapter.Email.APIURL == "" {
			return fmt.Errorf("%w: http mode requires an API URL", ErrInvalidAdapterConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown email mode %q", ErrInvalidAdapterConfigs, cfg.Adapter.Email.Mode)
	}

	if cfg.Workers.OTPSweepInterval < 0 || cfg.Workers.AuditRetentionInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
