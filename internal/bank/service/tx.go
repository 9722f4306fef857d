package service

import (
	"context"
	"sync"
	"time"

	dErrors "harborbank/pkg/domain-errors"
)

// StoreTx provides a transactional boundary for multi-step mutations.
// Implementations may wrap a database transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

const defaultTxTimeout = 5 * time.Second

// lockingTx serializes every operation behind one mutex so each runs to
// completion before the next starts.
type lockingTx struct {
	mu      sync.Mutex
	store   Store
	timeout time.Duration
}

// NewLockingTx wraps store in a coarse-lock transaction boundary.
func NewLockingTx(store Store) StoreTx {
	return &lockingTx{store: store, timeout: defaultTxTimeout}
}

func (t *lockingTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(t.store)
}
