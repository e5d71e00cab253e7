package adapter

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

type smtpEmailSender struct {
	addr string
	from string
	auth smtp.Auth

	// send is smtp.SendMail, replaced in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

	logger *logger.Logger
}

// NewSMTPEmailSender constructs an [EmailSender] delivering through the SMTP
// relay cfg.SMTPHost:cfg.SMTPPort. PLAIN authentication is used when
// cfg.SMTPUser is set.
func NewSMTPEmailSender(cfg config.Email, logger *logger.Logger) (EmailSender, error) {
	if cfg.SMTPHost == "" || cfg.SMTPPort <= 0 {
		return nil, fmt.Errorf("%w: smtp host and port are required", ErrDelivery)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrDelivery)
	}

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &smtpEmailSender{
		addr:   net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from:   cfg.From,
		auth:   auth,
		send:   smtp.SendMail,
		logger: logger,
	}, nil
}

// Send implements [EmailSender]. smtp.SendMail does not accept a context, so
// cancellation is only checked before the dial.
func (s *smtpEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := validateRecipient(to); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMIMEMessage(s.from, to, subject, body, time.Now())
	if err := s.send(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*smtpEmailSender.Send").Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	return nil
}

func buildMIMEMessage(from, to, subject, body string, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
