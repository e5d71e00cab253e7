package store

import (
	"context"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
)

// fileStorage implements [Storage] on top of a [FileDB].
type fileStorage struct {
	db     *FileDB
	repos  Repositories
	logger *logger.Logger
}

func NewFileStorage(db *FileDB, logger *logger.Logger) Storage {
	logger.Debug().Msg("creating file storage")
	return &fileStorage{
		db:     db,
		repos:  bindFileRepositories(db, nil, logger),
		logger: logger,
	}
}

func (s *fileStorage) Repos() Repositories {
	return s.repos
}

// WithTx holds the store lock for the whole of fn. fn must only use the
// repositories it is given.
func (s *fileStorage) WithTx(ctx context.Context, fn TxFunc) error {
	return s.db.withSession(ctx, func(sess *fileSession) error {
		return fn(ctx, bindFileRepositories(s.db, sess, s.logger))
	})
}

func (s *fileStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *fileStorage) Close() error {
	return nil
}

func bindFileRepositories(db *FileDB, sess *fileSession, logger *logger.Logger) Repositories {
	base := fileRepository{db: db, sess: sess, logger: logger}
	return Repositories{
		Users:     &fileUserRepository{base},
		OTPs:      &fileOTPRepository{base},
		Audit:     &fileAuditRepository{base},
		Employees: &fileEmployeeRepository{base},
		Visits:    &fileVisitRepository{base},
	}
}
