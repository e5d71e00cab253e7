package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

func TestWithTx_Commit(t *testing.T) {
	db, mock := newTestPostgresDB(t)
	storage := NewSQLStorage(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO otp").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := storage.WithTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		if err := repos.Users.CreateUser(ctx, models.User{ID: "u1"}); err != nil {
			return err
		}
		return repos.OTPs.CreateOTP(ctx, models.OTP{ID: "o1", UserID: "u1"})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newTestPostgresDB(t)
	storage := NewSQLStorage(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	err := storage.WithTx(context.Background(), func(ctx context.Context, repos Repositories) error {
		return repos.Users.CreateUser(ctx, models.User{ID: "u1"})
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := newTestPostgresDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = db.withTx(context.Background(), func(ctx context.Context, tx querier) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RetriesSerializationFailure(t *testing.T) {
	db, mock := newTestPostgresDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := db.withTx(context.Background(), func(ctx context.Context, tx querier) error {
		calls++
		if calls == 1 {
			return pgError(pgerrcode.SerializationFailure)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newTestPostgresDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := db.withTx(context.Background(), func(ctx context.Context, tx querier) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock := newTestPostgresDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := db.withTx(context.Background(), func(ctx context.Context, tx querier) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}
