package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/models"
)

// DefaultAuditPageSize is the number of events returned by List when no
// limit is given.
const DefaultAuditPageSize = 100

type auditService struct {
	storage   store.Storage
	retention int

	logger *logger.Logger
}

func NewAuditService(storage store.Storage, cfg config.App, logger *logger.Logger) AuditService {
	return &auditService{
		storage:   storage,
		retention: cfg.AuditRetention,
		logger:    logger,
	}
}

// List never returns more events than the retention policy keeps.
func (a *auditService) List(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrValidation)
	}
	if limit == 0 {
		limit = DefaultAuditPageSize
	}
	if a.retention > 0 && limit > a.retention {
		limit = a.retention
	}

	events, err := a.storage.Repos().Audit.ListAuditEvents(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditService.List").Msg("audit listing failed")
		return nil, dependency(err)
	}
	return events, nil
}

func (a *auditService) Count(ctx context.Context) (int, error) {
	n, err := a.storage.Repos().Audit.CountAuditEvents(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditService.Count").Msg("audit count failed")
		return 0, dependency(err)
	}
	return n, nil
}
