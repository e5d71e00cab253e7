package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/migrations"
)

// maxTxAttempts bounds how many times a unit of work is replayed after a
// retryable driver error (serialization failure, deadlock, busy database).
const maxTxAttempts = 3

// querier is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps a database/sql pool together with the dialect specific pieces the
// repositories need: the squirrel statement builder and the error classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect)
	if err != nil {
		return err
	}
	if db.logger != nil {
		db.logger.Info().Str("dialect", db.dialect).Int("applied", applied).Msg("schema migrated")
	}
	return nil
}

// withTx begins a transaction, runs fn with it and commits on success or
// rolls back on error or panic. Panics are rethrown. A retryable error makes
// the whole unit of work run again.
func (db *DB) withTx(ctx context.Context, fn func(ctx context.Context, tx querier) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if ctx.Err() != nil {
			return errors.Join(err, ctx.Err())
		}
		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Str("func", "*DB.withTx").Msg("retrying transaction")
	}

	return err
}

func (db *DB) runTx(ctx context.Context, fn func(ctx context.Context, tx querier) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
