// Package repo provides the seed tables repository for sqlite and postgres
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shelfprep/internal/modkit/repokit"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/store"
	"shelfprep/internal/services/seed/domain"
)

// Storage is the seed repository bound to one Queryer
type Storage interface {
	EnsureSchema(ctx context.Context) error
	Clear(ctx context.Context, t domain.Table) error
	Insert(ctx context.Context, t domain.Table, rows [][]any) (int64, error)
	RecordRun(ctx context.Context, run domain.Run) error
	Runs(ctx context.Context, limit int) ([]domain.Run, error)
}

// loadedAtLayout is fixed width so text ordering matches time ordering
const loadedAtLayout = "2006-01-02T15:04:05.000000Z"

// linksUniqueIndex folds NULL author ids to -1 so a rerun does not duplicate
// author-less links
const linksUniqueIndex = `CREATE UNIQUE INDEX IF NOT EXISTS book_authors_uq
	ON BOOK_AUTHORS (isbn_primary, COALESCE(author_id, -1))`

// dialect holds the sql that differs between backends
type dialect struct {
	name        store.Dialect
	ddl         []string
	placeholder func(n int) string
	insert      func(table, cols, vals string) string
}

var sqliteDialect = dialect{
	name: store.DialectSQLite,
	ddl: []string{
		`CREATE TABLE IF NOT EXISTS BOOK (
			isbn_primary TEXT PRIMARY KEY,
			isbn10       TEXT,
			isbn13       TEXT,
			title        TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS AUTHORS (
			author_id INTEGER PRIMARY KEY,
			name      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS BOOK_AUTHORS (
			isbn_primary TEXT NOT NULL REFERENCES BOOK(isbn_primary),
			author_id    INTEGER REFERENCES AUTHORS(author_id)
		)`,
		linksUniqueIndex,
		`CREATE TABLE IF NOT EXISTS BORROWER (
			card_id TEXT PRIMARY KEY,
			ssn     TEXT,
			bname   TEXT,
			address TEXT,
			phone   TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS LOAD_RUNS (
			run_id    TEXT PRIMARY KEY,
			loaded_at TEXT NOT NULL,
			books     INTEGER NOT NULL,
			authors   INTEGER NOT NULL,
			links     INTEGER NOT NULL,
			borrowers INTEGER NOT NULL
		)`,
	},
	placeholder: func(int) string { return "?" },
	insert: func(table, cols, vals string) string {
		return "INSERT OR IGNORE INTO " + table + " (" + cols + ") VALUES (" + vals + ")"
	},
}

var pgDialect = dialect{
	name: store.DialectPostgres,
	ddl: []string{
		`CREATE TABLE IF NOT EXISTS BOOK (
			isbn_primary TEXT PRIMARY KEY,
			isbn10       TEXT,
			isbn13       TEXT,
			title        TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS AUTHORS (
			author_id BIGINT PRIMARY KEY,
			name      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS BOOK_AUTHORS (
			isbn_primary TEXT NOT NULL REFERENCES BOOK(isbn_primary),
			author_id    BIGINT REFERENCES AUTHORS(author_id)
		)`,
		linksUniqueIndex,
		`CREATE TABLE IF NOT EXISTS BORROWER (
			card_id TEXT PRIMARY KEY,
			ssn     TEXT,
			bname   TEXT,
			address TEXT,
			phone   TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS LOAD_RUNS (
			run_id    TEXT PRIMARY KEY,
			loaded_at TEXT NOT NULL,
			books     INTEGER NOT NULL,
			authors   INTEGER NOT NULL,
			links     INTEGER NOT NULL,
			borrowers INTEGER NOT NULL
		)`,
	},
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	insert: func(table, cols, vals string) string {
		return "INSERT INTO " + table + " (" + cols + ") VALUES (" + vals + ") ON CONFLICT DO NOTHING"
	},
}

type binder struct{ d dialect }

// New returns a binder for the given dialect
func New(d store.Dialect) (repokit.Binder[Storage], error) {
	switch d {
	case store.DialectSQLite:
		return binder{d: sqliteDialect}, nil
	case store.DialectPostgres:
		return binder{d: pgDialect}, nil
	default:
		return nil, perr.InvalidArgf("seed repo: unsupported dialect %q", d)
	}
}

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q, d: b.d} }

type sqlRepo struct {
	q repokit.Queryer
	d dialect
}

// EnsureSchema creates the seed tables when they are missing
func (s *sqlRepo) EnsureSchema(ctx context.Context) error {
	if err := store.ExecAll(ctx, s.q, s.d.ddl...); err != nil {
		return wrap(err, "seed.schema")
	}
	return nil
}

// Clear deletes every row of t
func (s *sqlRepo) Clear(ctx context.Context, t domain.Table) error {
	if _, err := s.q.Exec(ctx, "DELETE FROM "+t.Name); err != nil {
		return wrap(err, "seed.clear."+t.Name)
	}
	return nil
}

// Insert adds rows to t ignoring key conflicts and returns how many landed
func (s *sqlRepo) Insert(ctx context.Context, t domain.Table, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	ph := make([]string, len(t.Columns))
	for i := range ph {
		ph[i] = s.d.placeholder(i + 1)
	}
	sql := s.d.insert(t.Name, strings.Join(t.Columns, ", "), strings.Join(ph, ", "))

	var n int64
	for i, r := range rows {
		if len(r) != len(t.Columns) {
			return n, perr.Newf(perr.ErrorCodeValidation, "%s row %d: %d values for %d columns", t.Name, i+1, len(r), len(t.Columns))
		}
		tag, err := s.q.Exec(ctx, sql, r...)
		if err != nil {
			return n, wrap(err, "seed.insert."+t.Name)
		}
		n += tag.RowsAffected()
	}
	return n, nil
}

// RecordRun appends one LOAD_RUNS row
func (s *sqlRepo) RecordRun(ctx context.Context, run domain.Run) error {
	ph := make([]string, 6)
	for i := range ph {
		ph[i] = s.d.placeholder(i + 1)
	}
	sql := "INSERT INTO LOAD_RUNS (run_id, loaded_at, books, authors, links, borrowers) VALUES (" + strings.Join(ph, ", ") + ")"
	_, err := s.q.Exec(ctx, sql,
		run.ID, run.LoadedAt.UTC().Format(loadedAtLayout),
		run.Counts.Books, run.Counts.Authors, run.Counts.Links, run.Counts.Borrowers,
	)
	if err != nil {
		return wrap(err, "seed.record_run")
	}
	return nil
}

// Runs lists recorded loads, newest first
func (s *sqlRepo) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 10
	}
	sql := `SELECT run_id, loaded_at, books, authors, links, borrowers
		FROM LOAD_RUNS ORDER BY loaded_at DESC, run_id DESC LIMIT ` + s.d.placeholder(1)
	out, err := store.Many(ctx, s.q, scanRun, sql, limit)
	if err != nil {
		return nil, wrap(err, "seed.runs")
	}
	return out, nil
}

func scanRun(r store.Row) (domain.Run, error) {
	var (
		run domain.Run
		at  string
	)
	if err := r.Scan(&run.ID, &at, &run.Counts.Books, &run.Counts.Authors, &run.Counts.Links, &run.Counts.Borrowers); err != nil {
		return domain.Run{}, err
	}
	t, err := time.Parse(loadedAtLayout, at)
	if err != nil {
		return domain.Run{}, perr.Wrapf(err, perr.ErrorCodeDB, "load run %s: bad loaded_at %q", run.ID, at)
	}
	run.LoadedAt = t
	return run, nil
}

// wrap keeps already classified errors and maps driver errors to DB codes
func wrap(err error, op string) error {
	if _, ok := perr.As(err); ok {
		return perr.WithOp(err, op)
	}
	return perr.WithOp(perr.FromDB(err, "database error"), op)
}
