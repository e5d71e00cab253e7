// Package migrations embeds the SQL schema of the service and applies it with
// goose. The same files are used for PostgreSQL and SQLite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Dialects understood by [Migrate].
const (
	DialectPostgres = string(goose.DialectPostgres)
	DialectSQLite   = string(goose.DialectSQLite3)
)

var (
	errNilDB          = errors.New("db is nil")
	errUnknownDialect = errors.New("unknown migration dialect")
)

// Migrate applies pending migrations and returns how many ran. Goose keeps
// its own version table, so running it on an up-to-date schema is a no-op.
func Migrate(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("migration error: %w", errNilDB)
	}

	switch dialect {
	case DialectPostgres, DialectSQLite:
	default:
		return 0, fmt.Errorf("migration error: %w: %q", errUnknownDialect, dialect)
	}

	provider, err := goose.NewProvider(goose.Dialect(dialect), db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("migration error creating provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}
	return len(results), nil
}
