package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

// auditRepository is the SQL implementation of [AuditRepository] over the
// "audit_logs" table. Events are never updated.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
	q      querier
}

func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

func (r *auditRepository) CreateAuditEvent(ctx context.Context, event models.AuditEvent) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAuditQuery(r.db.builder, event)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.CreateAuditEvent").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*auditRepository.CreateAuditEvent").Msg("error inserting audit event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListAuditEvents returns at most limit events, newest first.
func (r *auditRepository) ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAuditQuery(r.db.builder, limit)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.ListAuditEvents").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.ListAuditEvents").Msg("error querying audit events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.AuditEvent, 0, limit)
	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			log.Err(err).Str("func", "*auditRepository.ListAuditEvents").Msg("error scanning audit event")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*auditRepository.ListAuditEvents").Msg("error iterating audit events")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}

func (r *auditRepository) CountAuditEvents(ctx context.Context) (int, error) {
	query, args, err := buildCountQuery(r.db.builder, models.AuditEvent{}.TableName())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	n, err := queryCount(ctx, r.q, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditRepository.CountAuditEvents").Msg("error counting audit events")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

func (r *auditRepository) TrimAuditEvents(ctx context.Context, keep int) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTrimAuditQuery(r.db.builder, keep)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.TrimAuditEvents").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := execAffected(ctx, r.q, query, args)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.TrimAuditEvents").Msg("error trimming audit log")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
