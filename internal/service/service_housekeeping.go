package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
	"github.com/MKhiriev/go-erp-auth/internal/store"
)

// Worker names reported to metrics.
const (
	WorkerOTPSweeper     = "otp_sweeper"
	WorkerAuditRetention = "audit_retention"
)

type housekeepingService struct {
	storage   store.Storage
	now       func() time.Time
	retention int
	metrics   *metrics.Metrics

	logger *logger.Logger
}

func NewHousekeepingService(deps Deps, cfg config.App, logger *logger.Logger) HousekeepingService {
	deps = deps.withDefaults()

	return &housekeepingService{
		storage:   deps.Storage,
		now:       deps.Now,
		retention: cfg.AuditRetention,
		metrics:   deps.Metrics,
		logger:    logger,
	}
}

// SweepExpiredOTPs deletes every OTP whose validity window has passed.
// Verification treats such codes as expired anyway.
func (h *housekeepingService) SweepExpiredOTPs(ctx context.Context) (int64, error) {
	n, err := h.storage.Repos().OTPs.DeleteExpiredOTPs(ctx, h.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*housekeepingService.SweepExpiredOTPs").Msg("expired otp sweep failed")
		return 0, dependency(err)
	}

	h.metrics.AddReclaimed(WorkerOTPSweeper, n)
	return n, nil
}

// EnforceAuditRetention keeps only the newest events of the audit log. It
// is a no-op when retention is disabled.
func (h *housekeepingService) EnforceAuditRetention(ctx context.Context) (int64, error) {
	if h.retention <= 0 {
		return 0, nil
	}

	n, err := h.storage.Repos().Audit.TrimAuditEvents(ctx, h.retention)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*housekeepingService.EnforceAuditRetention").Msg("audit trim failed")
		return 0, dependency(err)
	}

	h.metrics.AddReclaimed(WorkerAuditRetention, n)
	return n, nil
}
