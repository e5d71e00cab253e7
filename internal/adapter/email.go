package adapter

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// NewEmailSender builds the [EmailSender] selected by cfg.Mode.
func NewEmailSender(cfg config.Email, logger *logger.Logger) (EmailSender, error) {
	switch cfg.Mode {
	case config.EmailModeLog, "":
		return NewLogEmailSender(logger), nil
	case config.EmailModeSMTP:
		return NewSMTPEmailSender(cfg, logger)
	case config.EmailModeHTTP:
		return NewHTTPEmailSender(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmailMode, cfg.Mode)
	}
}

// validateRecipient rejects addresses that could inject headers into the
// message.
func validateRecipient(to string) error {
	if strings.ContainsAny(to, "\r\n") {
		return ErrInvalidRecipient
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipient, err)
	}
	return nil
}
