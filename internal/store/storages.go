package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// NewStorage opens the backend selected by cfg.Mode. SQL backends are
// migrated before use; the file backend creates its data directory and
// truncates the audit log to auditRetention events on every insert.
func NewStorage(ctx context.Context, cfg config.Storage, auditRetention int, logger *logger.Logger) (Storage, error) {
	logger.Info().Str("mode", cfg.Mode).Msg("creating new storage...")

	var (
		db  *DB
		err error
	)

	switch cfg.Mode {
	case config.StorageModePostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.StorageModeSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	case config.StorageModeFile:
		fileDB, err := NewFileDB(cfg.Files.DataDir, auditRetention, logger)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		return NewFileStorage(fileDB, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageMode, cfg.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.Mode, err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStorage(db, logger), nil
}

// sqlStorage implements [Storage] on top of a database/sql pool.
type sqlStorage struct {
	db     *DB
	repos  Repositories
	logger *logger.Logger
}

func NewSQLStorage(db *DB, logger *logger.Logger) Storage {
	return &sqlStorage{
		db: db,
		repos: Repositories{
			Users:     NewUserRepository(db, logger),
			OTPs:      NewOTPRepository(db, logger),
			Audit:     NewAuditRepository(db, logger),
			Employees: NewEmployeeRepository(db, logger),
			Visits:    NewVisitRepository(db, logger),
		},
		logger: logger,
	}
}

func (s *sqlStorage) Repos() Repositories {
	return s.repos
}

// WithTx binds a fresh set of repositories to one database transaction.
func (s *sqlStorage) WithTx(ctx context.Context, fn TxFunc) error {
	return s.db.withTx(ctx, func(ctx context.Context, tx querier) error {
		return fn(ctx, s.bind(tx))
	})
}

func (s *sqlStorage) bind(q querier) Repositories {
	return Repositories{
		Users:     &userRepository{db: s.db, q: q, logger: s.logger},
		OTPs:      &otpRepository{db: s.db, q: q, logger: s.logger},
		Audit:     &auditRepository{db: s.db, q: q, logger: s.logger},
		Employees: &employeeRepository{db: s.db, q: q, logger: s.logger},
		Visits:    &visitRepository{db: s.db, q: q, logger: s.logger},
	}
}

func (s *sqlStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStorage) Close() error {
	return s.db.Close()
}
