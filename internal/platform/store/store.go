// Package store provides a unified sql seam over the postgres and sqlite backends
package store

import (
	"context"
	"errors"
	"fmt"

	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/logger"
)

// Dialect names the sql flavour behind a Store
type Dialect string

const (
	// DialectPostgres is pgx backed postgres
	DialectPostgres Dialect = "postgres"
	// DialectSQLite is modernc backed sqlite
	DialectSQLite Dialect = "sqlite"
)

// Store is the facade repos talk to
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// DB is the sql seam, nil until Open succeeds
	DB TxRunner

	// Dialect tells repos which placeholder and upsert flavour to emit
	Dialect Dialect

	tracer QueryTracer
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store for the configured driver
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	switch Dialect(cfg.Driver) {
	case DialectPostgres:
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB, s.Dialect = db, DialectPostgres
	case DialectSQLite:
		db, err := openSQLite(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB, s.Dialect = db, DialectSQLite
	default:
		return nil, perr.InvalidArgf("unknown store driver %q", cfg.Driver)
	}

	return s, nil
}

// Guard verifies the configured seam answers a ping
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.DB == nil {
		return nil
	}
	if p, ok := any(s.DB).(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Dialect, err)
		}
	}
	return nil
}

// Close closes the backend gracefully, nil seams are ignored
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
