package store

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/MKhiriev/go-erp-auth/models"
)

type fileOTPRepository struct {
	fileRepository
}

func (r *fileOTPRepository) CreateOTP(ctx context.Context, otp models.OTP) error {
	return r.run(ctx, func(s *fileSession) error {
		otps, err := s.otps.get()
		if err != nil {
			return err
		}
		s.otps.set(append(otps, otp))
		return nil
	})
}

// FindLatestOTP picks the code with the greatest (created_at, id).
func (r *fileOTPRepository) FindLatestOTP(ctx context.Context, userID string) (models.OTP, error) {
	var latest models.OTP
	err := r.run(ctx, func(s *fileSession) error {
		otps, err := s.otps.get()
		if err != nil {
			return err
		}

		found := false
		for _, o := range otps {
			if o.UserID != userID {
				continue
			}
			if !found || compareOTPs(o, latest) > 0 {
				latest, found = o, true
			}
		}
		if !found {
			return ErrOTPNotFound
		}
		return nil
	})

	return latest, err
}

func compareOTPs(a, b models.OTP) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func (r *fileOTPRepository) UpdateOTPAttempts(ctx context.Context, id string, attempts int) error {
	return r.run(ctx, func(s *fileSession) error {
		otps, err := s.otps.get()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(otps, func(o models.OTP) bool { return o.ID == id })
		if idx < 0 {
			return ErrOTPNotFound
		}
		otps[idx].Attempts = attempts
		s.otps.set(otps)
		return nil
	})
}

func (r *fileOTPRepository) DeleteOTP(ctx context.Context, id string) error {
	_, err := r.deleteWhere(ctx, func(o models.OTP) bool { return o.ID == id })
	return err
}

func (r *fileOTPRepository) DeleteUserOTPs(ctx context.Context, userID string) error {
	_, err := r.deleteWhere(ctx, func(o models.OTP) bool { return o.UserID == userID })
	return err
}

func (r *fileOTPRepository) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	return r.deleteWhere(ctx, func(o models.OTP) bool { return o.IsExpired(now) })
}

func (r *fileOTPRepository) deleteWhere(ctx context.Context, match func(models.OTP) bool) (int64, error) {
	var removed int64
	err := r.run(ctx, func(s *fileSession) error {
		otps, err := s.otps.get()
		if err != nil {
			return err
		}

		before := len(otps)
		otps = slices.DeleteFunc(otps, match)
		removed = int64(before - len(otps))
		if removed > 0 {
			s.otps.set(otps)
		}
		return nil
	})

	return removed, err
}
