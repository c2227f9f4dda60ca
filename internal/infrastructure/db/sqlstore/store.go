// Package sqlstore persists users and contacts in a relational database.
//
// Postgres (through the pgx database/sql driver) is the production backend;
// SQLite (modernc.org/sqlite) serves local runs and tests. Both share the same
// queries, written with Postgres-style $N placeholders, and the same goose
// migration history.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const defaultTimeout = 5 * time.Second

// Supported values for Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config captures the settings required to open the store.
type Config struct {
	Driver string
	// DSN is a Postgres connection URL, or a SQLite file path.
	DSN          string
	MaxOpenConns int
	Timeout      time.Duration
}

// Store owns the connection pool. Repositories borrow it; Close releases it.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database, verifies connectivity with a ping, and
// applies pending migrations.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("%s: database url is required", d.name)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open(d.driverName, d.dsn(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", d.name, err)
	}
	if d.singleWriter {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", d.name, err)
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(ctx, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// query adapts a $N-placeholder query to the store's dialect.
func (s *Store) query(q string) string {
	return s.dialect.rebind(q)
}
