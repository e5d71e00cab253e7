package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/adapter"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
)

const (
	emailKindOTP          = "otp"
	emailKindTempPassword = "temp_password"
)

// notifier dispatches emails. Delivery is best effort: failures are logged
// and counted, never returned.
type notifier struct {
	sender  adapter.EmailSender
	metrics *metrics.Metrics
}

func (n notifier) sendOTP(ctx context.Context, to, code string, ttl time.Duration, maxAttempts int) {
	err := n.sender.Send(ctx, to, adapter.SubjectOTP, adapter.OTPMessageBody(code, ttl, maxAttempts))
	n.done(ctx, emailKindOTP, to, err)
}

func (n notifier) sendTempPassword(ctx context.Context, name, to, password string) {
	err := n.sender.Send(ctx, to, adapter.SubjectTempPassword, adapter.TempPasswordMessageBody(name, to, password))
	n.done(ctx, emailKindTempPassword, to, err)
}

func (n notifier) done(ctx context.Context, kind, to string, err error) {
	n.metrics.ObserveEmail(kind, err)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "notifier.send").
			Str("kind", kind).
			Str("to", to).
			Msg("email delivery failed")
	}
}
