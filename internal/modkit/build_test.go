package modkit

import (
	"context"
	"reflect"
	"testing"

	"shelfprep/internal/modkit/repokit"
	"shelfprep/internal/platform/store"
)

type countingTx struct {
	txCalls int
}

func (c *countingTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	c.txCalls++
	return fn(c)
}

func (c *countingTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, nil
}

func (c *countingTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (c *countingTx) QueryRow(context.Context, string, ...any) store.Row { return nil }

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" {
		t.Fatalf("default Name = %q, want empty", b.Name)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if len(b.BeginHooks) != 0 {
		t.Fatalf("default BeginHooks length = %d, want 0", len(b.BeginHooks))
	}

	inner := &countingTx{}
	if got := b.Tx(inner); got != repokit.TxRunner(inner) {
		t.Fatalf("Tx without hooks should return the runner untouched")
	}
	if b.Tx(nil) != nil {
		t.Fatalf("Tx(nil) should stay nil")
	}
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	var seq []string
	h1 := func(context.Context, repokit.Queryer) error { seq = append(seq, "h1"); return nil }
	h2 := func(context.Context, repokit.Queryer) error { seq = append(seq, "h2"); return nil }
	hooks := []repokit.BeginHook{h1}

	type ports struct{ N int }
	b := Build(
		WithName("seed"),
		WithPorts(ports{N: 3}),
		WithBeginHooks(hooks...),
		WithBeginHooks(h2),
	)

	if b.Name != "seed" {
		t.Fatalf("Name = %q", b.Name)
	}
	if !reflect.DeepEqual(b.Ports, ports{N: 3}) {
		t.Fatalf("Ports = %#v", b.Ports)
	}
	if len(b.BeginHooks) != 2 {
		t.Fatalf("BeginHooks = %d want 2", len(b.BeginHooks))
	}

	// mutating the caller slice must not leak into Built
	hooks[0] = nil
	if b.BeginHooks[0] == nil {
		t.Fatalf("Built should own a copy of the hooks")
	}

	inner := &countingTx{}
	err := b.Tx(inner).Tx(context.Background(), func(repokit.Queryer) error {
		seq = append(seq, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !reflect.DeepEqual(seq, []string{"h1", "h2", "fn"}) {
		t.Fatalf("sequence = %v", seq)
	}
	if inner.txCalls != 1 {
		t.Fatalf("inner Tx calls = %d want 1", inner.txCalls)
	}
}
