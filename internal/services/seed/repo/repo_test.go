package repo

import (
	"context"
	"testing"
	"time"

	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/store"
	"shelfprep/internal/services/seed/domain"
)

func openRepo(t *testing.T) (Storage, *store.Store) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Driver: "sqlite", SQLite: store.SQLiteConfig{Path: ":memory:"}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	b, err := New(st.Dialect)
	if err != nil {
		t.Fatalf("binder: %v", err)
	}
	r := b.Bind(st.DB)
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return r, st
}

func count(t *testing.T, st *store.Store, table string) int {
	t.Helper()
	n, err := store.Scalar[int](context.Background(), st.DB, "SELECT COUNT(*) FROM "+table)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New(store.Dialect("mysql"))
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	r, _ := openRepo(t)
	if err := r.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestInsert_IgnoresConflicts(t *testing.T) {
	ctx := context.Background()
	r, st := openRepo(t)

	books := [][]any{
		{"9780306406157", "0306406152", "9780306406157", "Signals"},
		{"0123456789", "0123456789", nil, "Leading Zeros"},
	}
	n, err := r.Insert(ctx, domain.Book, books)
	if err != nil || n != 2 {
		t.Fatalf("insert = %d, %v", n, err)
	}
	n, err = r.Insert(ctx, domain.Book, books)
	if err != nil || n != 0 {
		t.Fatalf("rerun insert = %d, %v", n, err)
	}
	if c := count(t, st, "BOOK"); c != 2 {
		t.Fatalf("BOOK rows = %d", c)
	}

	isbn10, err := store.Scalar[string](ctx, st.DB, "SELECT isbn10 FROM BOOK WHERE isbn_primary = ?", "0123456789")
	if err != nil || isbn10 != "0123456789" {
		t.Fatalf("leading zero lost: %q %v", isbn10, err)
	}
}

func TestInsert_NullLinksNotDuplicated(t *testing.T) {
	ctx := context.Background()
	r, st := openRepo(t)

	if _, err := r.Insert(ctx, domain.Book, [][]any{{"0123456789", "0123456789", nil, "Anon"}}); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := r.Insert(ctx, domain.Authors, [][]any{{int64(1), "Ada Lovelace"}}); err != nil {
		t.Fatalf("author: %v", err)
	}
	links := [][]any{{"0123456789", nil}, {"0123456789", int64(1)}}
	for i := 0; i < 2; i++ {
		if _, err := r.Insert(ctx, domain.BookAuthors, links); err != nil {
			t.Fatalf("links pass %d: %v", i, err)
		}
	}
	if c := count(t, st, "BOOK_AUTHORS"); c != 2 {
		t.Fatalf("BOOK_AUTHORS rows = %d want 2", c)
	}
}

func TestInsert_ArityMismatch(t *testing.T) {
	r, _ := openRepo(t)
	_, err := r.Insert(context.Background(), domain.Authors, [][]any{{int64(1)}})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInsert_ForeignKeyViolation(t *testing.T) {
	r, _ := openRepo(t)
	_, err := r.Insert(context.Background(), domain.BookAuthors, [][]any{{"missing", nil}})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected db error, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Op() != "seed.insert.BOOK_AUTHORS" {
		t.Fatalf("op = %v", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	r, st := openRepo(t)
	if _, err := r.Insert(ctx, domain.Borrower, [][]any{{"ID1", nil, "Ada", nil, nil}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := r.Clear(ctx, domain.Borrower); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if c := count(t, st, "BORROWER"); c != 0 {
		t.Fatalf("BORROWER rows = %d", c)
	}
}

func TestRecordRun_RunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	r, _ := openRepo(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		run := domain.Run{
			ID:       id,
			LoadedAt: base.Add(time.Duration(i) * time.Second),
			Counts:   domain.Counts{Books: i, Authors: 2 * i},
		}
		if err := r.RecordRun(ctx, run); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	runs, err := r.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("runs = %+v", runs)
	}
	if !runs[0].LoadedAt.Equal(base.Add(2*time.Second)) || runs[0].Counts.Authors != 4 {
		t.Fatalf("newest = %+v", runs[0])
	}

	all, err := r.Runs(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("default limit: %d %v", len(all), err)
	}
}
