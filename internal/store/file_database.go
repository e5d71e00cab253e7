package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

// FileDB is the flat-file backend: one JSON array per collection inside dir.
//
// All access goes through a session taken under a single store-wide mutex.
// A session loads collections lazily, and on success writes back only the
// collections it changed, each through a temp file and a rename.
type FileDB struct {
	dir            string
	auditRetention int
	mu             sync.Mutex
	logger         *logger.Logger
}

// NewFileDB creates dir if needed. A positive auditRetention makes every
// audit insert truncate the log to the newest auditRetention events.
func NewFileDB(dir string, auditRetention int, logger *logger.Logger) (*FileDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Err(err).Str("func", "NewFileDB").Msg("error creating data directory")
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	logger.Info().Str("func", "NewFileDB").Str("dir", dir).Msg("file storage is ready")

	return &FileDB{
		dir:            dir,
		auditRetention: auditRetention,
		logger:         logger,
	}, nil
}

// withSession runs fn with exclusive access to the store. Changes made by fn
// are persisted only if it returns nil.
func (db *FileDB) withSession(ctx context.Context, fn func(s *fileSession) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	s := newFileSession(db.dir, db.auditRetention)
	if err := fn(s); err != nil {
		return err
	}

	if err := s.commit(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*FileDB.withSession").Msg("error committing file session")
		return err
	}

	return nil
}

// fileSession is the unit of work of the flat-file backend.
type fileSession struct {
	auditRetention int

	users     *collection[models.User]
	otps      *collection[models.OTP]
	audit     *collection[models.AuditEvent]
	employees *collection[models.Employee]
	visits    *collection[models.Visit]
}

func newFileSession(dir string, auditRetention int) *fileSession {
	return &fileSession{
		auditRetention: auditRetention,
		users:          newCollection[models.User](dir, models.User{}.TableName()),
		otps:           newCollection[models.OTP](dir, models.OTP{}.TableName()),
		audit:          newCollection[models.AuditEvent](dir, models.AuditEvent{}.TableName()),
		employees:      newCollection[models.Employee](dir, models.Employee{}.TableName()),
		visits:         newCollection[models.Visit](dir, models.Visit{}.TableName()),
	}
}

func (s *fileSession) commit() error {
	return errors.Join(
		s.users.flush(),
		s.otps.flush(),
		s.audit.flush(),
		s.employees.flush(),
		s.visits.flush(),
	)
}

// collection is one JSON file holding an array of T.
type collection[T any] struct {
	path   string
	items  []T
	loaded bool
	dirty  bool
}

func newCollection[T any](dir, name string) *collection[T] {
	return &collection[T]{path: filepath.Join(dir, name+".json")}
}

// get returns the items of the collection, reading the file on first use.
// A missing or empty file is an empty collection.
func (c *collection[T]) get() ([]T, error) {
	if c.loaded {
		return c.items, nil
	}

	data, err := os.ReadFile(c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.items = make([]T, 0)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrReadingCollection, c.path, err)
	case len(data) == 0:
		c.items = make([]T, 0)
	default:
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadingCollection, c.path, err)
		}
		if items == nil {
			items = make([]T, 0)
		}
		c.items = items
	}

	c.loaded = true
	return c.items, nil
}

func (c *collection[T]) set(items []T) {
	c.items = items
	c.loaded = true
	c.dirty = true
}

func (c *collection[T]) flush() error {
	if !c.dirty {
		return nil
	}

	data, err := json.MarshalIndent(c.items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWritingCollection, c.path, err)
	}

	if err := writeFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWritingCollection, c.path, err)
	}

	c.dirty = false
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// fileRepository is embedded by every file repository. Outside a unit of
// work each call opens its own session; inside one, sess is shared.
type fileRepository struct {
	db     *FileDB
	sess   *fileSession
	logger *logger.Logger
}

func (r fileRepository) run(ctx context.Context, fn func(s *fileSession) error) error {
	if r.sess != nil {
		return fn(r.sess)
	}
	return r.db.withSession(ctx, fn)
}
