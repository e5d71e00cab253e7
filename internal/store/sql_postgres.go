package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/migrations"
)

// postgresApplicationName shows up in pg_stat_activity.
const postgresApplicationName = "erp-auth"

// NewConnectPostgres opens a pgx-backed pool, pings it and returns it wrapped
// in a [DB] with the dollar placeholder format.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		// DSN может содержать пароль, поэтому в лог идёт только ошибка
		log.Err(err).Str("func", "NewConnectPostgres").Msg("invalid database DSN")
		return nil, fmt.Errorf("error parsing database DSN: %w", err)
	}
	if _, ok := connCfg.RuntimeParams["application_name"]; !ok {
		connCfg.RuntimeParams["application_name"] = postgresApplicationName
	}

	conn := stdlib.OpenDB(*connCfg)
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(max(1, cfg.MaxOpenConns/2))
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").
			Str("host", connCfg.Host).Uint16("port", connCfg.Port).
			Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").
		Str("host", connCfg.Host).Str("database", connCfg.Database).
		Msg("connected to database successfully")

	return newPostgresDB(conn, log), nil
}

func newPostgresDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            migrations.DialectPostgres,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             log,
	}
}

// postgresError returns the SQLSTATE of err, or "" for non-server errors.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
