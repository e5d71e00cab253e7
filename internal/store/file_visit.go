package store

import (
	"context"
	"slices"
	"time"

	"github.com/MKhiriev/go-erp-auth/models"
)

type fileVisitRepository struct {
	fileRepository
}

func (r *fileVisitRepository) CreateVisit(ctx context.Context, visit models.Visit) error {
	return r.run(ctx, func(s *fileSession) error {
		visits, err := s.visits.get()
		if err != nil {
			return err
		}
		s.visits.set(append(visits, visit))
		return nil
	})
}

func (r *fileVisitRepository) CountVisits(ctx context.Context) (int, error) {
	var n int
	err := r.run(ctx, func(s *fileSession) error {
		visits, err := s.visits.get()
		n = len(visits)
		return err
	})
	return n, err
}

func (r *fileVisitRepository) VisitTimestampsSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	timestamps := make([]time.Time, 0)
	err := r.run(ctx, func(s *fileSession) error {
		visits, err := s.visits.get()
		if err != nil {
			return err
		}

		for _, v := range visits {
			if !v.Timestamp.Before(since) {
				timestamps = append(timestamps, v.Timestamp)
			}
		}
		slices.SortFunc(timestamps, time.Time.Compare)
		return nil
	})

	return timestamps, err
}
