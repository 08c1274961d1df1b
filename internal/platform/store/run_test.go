package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"shelfprep/internal/platform/testkit"
)

func TestRunTx_RetriesTransientThenSucceeds(t *testing.T) {
	testkit.Swap(t, &sleep, func(time.Duration) {})

	f := &fakeTx{errs: []error{errors.New("database is locked"), nil}}
	var seen int
	err := RunTx(context.Background(), f, 3, func(ctx context.Context, q RowQuerier) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("RunTx: %v", err)
	}
	if f.calls != 2 || seen != 2 {
		t.Fatalf("calls=%d seen=%d, want 2/2", f.calls, seen)
	}
}

func TestRunTx_PermanentErrorStops(t *testing.T) {
	testkit.Swap(t, &sleep, func(time.Duration) {})

	boom := errors.New("syntax error")
	f := &fakeTx{}
	err := RunTx(context.Background(), f, 5, func(ctx context.Context, q RowQuerier) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("calls = %d, want 1", f.calls)
	}
}

func TestRunTx_ExhaustsAttempts(t *testing.T) {
	testkit.Swap(t, &sleep, func(time.Duration) {})

	locked := errors.New("SQLITE_BUSY")
	f := &fakeTx{errs: []error{locked, locked, locked}}
	err := RunTx(context.Background(), f, 0, func(context.Context, RowQuerier) error { return nil })
	if !errors.Is(err, locked) || f.calls != 1 {
		t.Fatalf("zero attempts should run once: calls=%d err=%v", f.calls, err)
	}
}
