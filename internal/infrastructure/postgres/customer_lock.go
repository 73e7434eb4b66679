package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const unlockTimeout = 5 * time.Second

// CustomerLock implements port.CustomerLocker with a session-level advisory
// lock keyed by customer id, so every creditd instance sharing the database
// serializes on the same key.
type CustomerLock struct {
	pool *pgxpool.Pool
}

func NewCustomerLock(pool *pgxpool.Pool) *CustomerLock {
	return &CustomerLock{pool: pool}
}

// WithCustomerLock blocks until the lock is granted or ctx ends, then runs
// fn. A connection whose unlock fails is closed, which releases the lock.
func (l *CustomerLock) WithCustomerLock(ctx context.Context, customerID string, fn func(ctx context.Context) error) (err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire lock connection: %w", err)
	}

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock(hashtextextended('loan-book:' || $1, 0))`, customerID); err != nil {
		conn.Release()
		return fmt.Errorf("lock customer %s: %w", customerID, err)
	}

	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
		defer cancel()

		var released bool
		uerr := conn.QueryRow(unlockCtx,
			`SELECT pg_advisory_unlock(hashtextextended('loan-book:' || $1, 0))`, customerID).Scan(&released)
		if uerr == nil && !released {
			uerr = errors.New("lock was not held")
		}
		if uerr != nil {
			_ = conn.Hijack().Close(unlockCtx) //nolint:errcheck // closing the session drops its locks
			err = errors.Join(err, fmt.Errorf("unlock customer %s: %w", customerID, uerr))
			return
		}
		conn.Release()
	}()

	return fn(ctx)
}
