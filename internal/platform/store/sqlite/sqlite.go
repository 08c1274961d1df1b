// Package sqlite opens an embedded sqlite database through database/sql
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures the sqlite handle
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// DB is an sqlite handle
type DB struct {
	SQL  *sql.DB
	Path string
}

var sqlOpen = sql.Open

// Open opens path, applies the connection pragmas and pings it
func Open(ctx context.Context, cfg Config) (*DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	db, err := sqlOpen("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps :memory: databases alive across statements
	// and serialises writers on file databases
	db.SetMaxOpenConns(1)

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	for _, p := range []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()),
	} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", p, err)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{SQL: db, Path: path}, nil
}

// Close closes the handle
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
