package store

import (
	"context"
	"fmt"
	"time"

	"shelfprep/internal/platform/store/pg"
	"shelfprep/internal/platform/store/sqlite"
)

var sleep = time.Sleep

func emitterFor(cfg Config, s *Store) emitter {
	e := emitter{slowUS: int64(cfg.SlowQueryMs) * 1000}
	switch {
	case s.tracer != nil:
		e.tracer = s.tracer
	case cfg.LogSQL:
		e.tracer = Tracer(s.Log)
	}
	return e
}

// openPG opens pg and wraps it with our adapter once the pool answers a ping
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
	}, nil)
	if err != nil {
		return nil, err
	}

	maxAttempts := cfg.PG.ConnectRetries
	if maxAttempts <= 0 {
		maxAttempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // pool directly, no trace line
		cancel()

		if lastErr == nil {
			return newPGAdapter(p, emitterFor(cfg, s)), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Debug().Int("attempt", i+1).Err(lastErr).Msg("postgres not ready")
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		return nil, err
	}
	return newSQLiteAdapter(db, emitterFor(cfg, s)), nil
}
