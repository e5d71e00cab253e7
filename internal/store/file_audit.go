package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/MKhiriev/go-erp-auth/models"
)

type fileAuditRepository struct {
	fileRepository
}

// CreateAuditEvent appends event and truncates the log to the configured
// retention.
func (r *fileAuditRepository) CreateAuditEvent(ctx context.Context, event models.AuditEvent) error {
	return r.run(ctx, func(s *fileSession) error {
		events, err := s.audit.get()
		if err != nil {
			return err
		}

		events = append(events, event)
		if s.auditRetention > 0 && len(events) > s.auditRetention {
			events = newestAuditEvents(events, s.auditRetention)
		}
		s.audit.set(events)
		return nil
	})
}

func (r *fileAuditRepository) ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	var list []models.AuditEvent
	err := r.run(ctx, func(s *fileSession) error {
		events, err := s.audit.get()
		if err != nil {
			return err
		}

		sorted := slices.Clone(events)
		slices.SortStableFunc(sorted, func(a, b models.AuditEvent) int {
			return compareAuditEvents(b, a)
		})
		if limit >= 0 && len(sorted) > limit {
			sorted = sorted[:limit]
		}
		list = sorted
		return nil
	})

	return list, err
}

func (r *fileAuditRepository) CountAuditEvents(ctx context.Context) (int, error) {
	var n int
	err := r.run(ctx, func(s *fileSession) error {
		events, err := s.audit.get()
		n = len(events)
		return err
	})
	return n, err
}

func (r *fileAuditRepository) TrimAuditEvents(ctx context.Context, keep int) (int64, error) {
	var removed int64
	err := r.run(ctx, func(s *fileSession) error {
		events, err := s.audit.get()
		if err != nil {
			return err
		}
		if len(events) <= keep {
			return nil
		}

		removed = int64(len(events) - keep)
		s.audit.set(newestAuditEvents(events, keep))
		return nil
	})

	return removed, err
}

// newestAuditEvents keeps the newest keep events in chronological order.
func newestAuditEvents(events []models.AuditEvent, keep int) []models.AuditEvent {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, compareAuditEvents)
	return sorted[len(sorted)-keep:]
}

func compareAuditEvents(a, b models.AuditEvent) int {
	if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
