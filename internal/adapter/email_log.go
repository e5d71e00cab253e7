package adapter

import (
	"context"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// logEmailSender пишет письма в лог вместо отправки. Используется в
// разработке, когда SMTP не настроен.
type logEmailSender struct {
	logger *logger.Logger
}

func NewLogEmailSender(logger *logger.Logger) EmailSender {
	return &logEmailSender{logger: logger}
}

// Send implements [EmailSender].
func (s *logEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := validateRecipient(to); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email message (log mode)")

	return nil
}
