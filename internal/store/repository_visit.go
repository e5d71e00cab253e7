package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

type visitRepository struct {
	logger *logger.Logger
	db     *DB
	q      querier
}

func NewVisitRepository(db *DB, logger *logger.Logger) VisitRepository {
	logger.Debug().Msg("creating visit repository")
	return &visitRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

func (r *visitRepository) CreateVisit(ctx context.Context, visit models.Visit) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertVisitQuery(r.db.builder, visit)
	if err != nil {
		log.Err(err).Str("func", "*visitRepository.CreateVisit").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*visitRepository.CreateVisit").Msg("error inserting visit")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *visitRepository) CountVisits(ctx context.Context) (int, error) {
	query, args, err := buildCountQuery(r.db.builder, models.Visit{}.TableName())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	n, err := queryCount(ctx, r.q, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*visitRepository.CountVisits").Msg("error counting visits")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

// VisitTimestampsSince returns the timestamps of visits at or after since in
// ascending order. Grouping by day happens in the caller so the query stays
// portable between dialects.
func (r *visitRepository) VisitTimestampsSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildVisitTimestampsQuery(r.db.builder, since)
	if err != nil {
		log.Err(err).Str("func", "*visitRepository.VisitTimestampsSince").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*visitRepository.VisitTimestampsSince").Msg("error querying visits")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	timestamps := make([]time.Time, 0)
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		timestamps = append(timestamps, ts)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return timestamps, nil
}
