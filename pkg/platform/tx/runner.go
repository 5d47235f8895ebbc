package tx

import (
	"context"
	"database/sql"
	"sync"
	"time"

	dErrors "surety/pkg/domain-errors"
)

// Runner serializes ledger transitions. Every public mutating entry point runs
// its precondition checks and mutations inside one RunInTx call, so no other
// call observes a partially applied transition.
//
// RunInTx on a context that already carries a transaction fails with
// CodeReentrantCall. RunReadOnly joins an enclosing transaction.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type activeKey struct{}

// Active reports whether ctx is inside a Runner transaction.
func Active(ctx context.Context) bool {
	active, _ := ctx.Value(activeKey{}).(bool)
	return active
}

func markActive(ctx context.Context) context.Context {
	return context.WithValue(ctx, activeKey{}, true)
}

// RequireActive guards internal entry points that must only run inside a
// transition opened by a public entry point.
func RequireActive(ctx context.Context) error {
	if !Active(ctx) {
		return dErrors.New(dErrors.CodeInternal, "operation requires an open ledger transaction")
	}
	return nil
}

func rejectReentrant(ctx context.Context) error {
	if Active(ctx) {
		return dErrors.New(dErrors.CodeReentrantCall, "re-entrant ledger transition rejected")
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return nil
}

// InMemoryRunner provides the transaction boundary for in-memory stores with a
// single process-wide lock.
type InMemoryRunner struct {
	mu sync.RWMutex
}

func NewInMemory() *InMemoryRunner {
	return &InMemoryRunner{}
}

func (r *InMemoryRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := rejectReentrant(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(markActive(ctx))
}

func (r *InMemoryRunner) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if Active(ctx) {
		return fn(ctx)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(markActive(ctx))
}

const defaultTxTimeout = 5 * time.Second

// ledgerLockKey is the advisory lock taken by every mutating transaction.
const ledgerLockKey int64 = 0x5e7e7

// PostgresRunner serializes writers with a transaction-scoped advisory lock.
// Transactions run at read committed so every statement after the lock sees
// the previous writer's commit.
type PostgresRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgres(db *sql.DB) *PostgresRunner {
	return &PostgresRunner{db: db, timeout: defaultTxTimeout}
}

func (r *PostgresRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := rejectReentrant(ctx); err != nil {
		return err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin ledger transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "acquire ledger lock")
	}
	if err := fn(WithTx(markActive(ctx), tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit ledger transaction")
	}
	return nil
}

func (r *PostgresRunner) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if Active(ctx) {
		return fn(ctx)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin read transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(WithTx(markActive(ctx), tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	timeout := r.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
