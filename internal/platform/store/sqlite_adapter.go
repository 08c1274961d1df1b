package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shelfprep/internal/platform/store/sqlite"
)

// sqliteAdapter wraps a database/sql handle and implements TxRunner and Pinger
type sqliteAdapter struct {
	emitter
	db *sqlite.DB
}

func newSQLiteAdapter(db *sqlite.DB, e emitter) *sqliteAdapter {
	e.driver = DialectSQLite
	return &sqliteAdapter{db: db, emitter: e}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil || a.db.SQL == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.SQL.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return sqlExec(ctx, a.db.SQL, a.emitter, query, args)
}

func (a *sqliteAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlQuery(ctx, a.db.SQL, a.emitter, query, args)
}

func (a *sqliteAdapter) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sqlQueryRow(ctx, a.db.SQL, a.emitter, query, args)
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTxQuerier{tx: tx, emitter: a.emitter}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlConn is the subset shared by *sql.DB and *sql.Tx
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func sqlExec(ctx context.Context, c sqlConn, e emitter, query string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, query, args...)
	e.emit(ctx, query, args, start, err)
	if err != nil {
		return sqlTag{}, err
	}
	n, _ := res.RowsAffected()
	return sqlTag{n: n}, nil
}

func sqlQuery(ctx context.Context, c sqlConn, e emitter, query string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, query, args...)
	e.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func sqlQueryRow(ctx context.Context, c sqlConn, e emitter, query string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, query, args...)
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			e.emit(ctx, query, args, start, scanErr)
		},
	}
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// sqlTag mimics the pg command tag text so logs read the same across drivers
type sqlTag struct{ n int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("OK %d", t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }

type sqlTxQuerier struct {
	emitter
	tx *sql.Tx
}

func (t sqlTxQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return sqlExec(ctx, t.tx, t.emitter, query, args)
}

func (t sqlTxQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlQuery(ctx, t.tx, t.emitter, query, args)
}

func (t sqlTxQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sqlQueryRow(ctx, t.tx, t.emitter, query, args)
}
