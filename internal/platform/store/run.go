package store

import (
	"context"
	"time"

	perr "shelfprep/internal/platform/errors"
)

// RunTx calls fn inside a transaction and retries the whole transaction
// while the backend reports a transient failure (lock, serialization, deadlock)
func RunTx(ctx context.Context, tx TxRunner, attempts int, fn func(ctx context.Context, q RowQuerier) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	backoff := 50 * time.Millisecond
	for i := 0; i < attempts; i++ {
		err = tx.Tx(ctx, func(q RowQuerier) error {
			return fn(ctx, q)
		})
		if err == nil || !perr.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
		sleep(backoff)
		backoff *= 2
	}
	return err
}
