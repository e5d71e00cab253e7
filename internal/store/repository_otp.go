package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

type otpRepository struct {
	logger *logger.Logger
	db     *DB
	q      querier
}

func NewOTPRepository(db *DB, logger *logger.Logger) OTPRepository {
	logger.Debug().Msg("creating otp repository")
	return &otpRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

func (r *otpRepository) CreateOTP(ctx context.Context, otp models.OTP) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertOTPQuery(r.db.builder, otp)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.CreateOTP").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*otpRepository.CreateOTP").Msg("error inserting otp")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindLatestOTP returns the newest code of the user or [ErrOTPNotFound].
func (r *otpRepository) FindLatestOTP(ctx context.Context, userID string) (models.OTP, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLatestOTPQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.FindLatestOTP").Msg("error building query")
		return models.OTP{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	otp, err := scanOTP(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.OTP{}, ErrOTPNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.FindLatestOTP").Msg("error scanning otp")
		return models.OTP{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return otp, nil
}

func (r *otpRepository) UpdateOTPAttempts(ctx context.Context, id string, attempts int) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Update(models.OTP{}.TableName()).
		Set("attempts", attempts).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.UpdateOTPAttempts").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := execAffected(ctx, r.q, query, args)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.UpdateOTPAttempts").Msg("error updating attempts")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrOTPNotFound
	}

	return nil
}

func (r *otpRepository) DeleteOTP(ctx context.Context, id string) error {
	_, err := r.delete(ctx, "*otpRepository.DeleteOTP", sq.Eq{"id": id})
	return err
}

func (r *otpRepository) DeleteUserOTPs(ctx context.Context, userID string) error {
	_, err := r.delete(ctx, "*otpRepository.DeleteUserOTPs", sq.Eq{"user_id": userID})
	return err
}

// DeleteExpiredOTPs removes every code with expires_at <= now.
func (r *otpRepository) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredOTPsQuery(r.db.builder, now)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.DeleteExpiredOTPs").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := execAffected(ctx, r.q, query, args)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.DeleteExpiredOTPs").Msg("error deleting expired otp")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *otpRepository) delete(ctx context.Context, fn string, where sq.Eq) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(models.OTP{}.TableName()).Where(where).ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := execAffected(ctx, r.q, query, args)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error deleting otp")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
