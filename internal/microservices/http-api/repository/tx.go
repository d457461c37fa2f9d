package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const txMaxRetries = 3

// TxRunner abstracts gorm's transaction entrypoint so services owning a
// transactional flow stay mockable in unit tests.
type TxRunner interface {
	InTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *gorm.DB) error) error {
	return withTxRetry(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(fn, opts)
	})
}

// withTxRetry re-runs the whole transaction when postgres aborts it. Under
// REPEATABLE READ a waiter blocked on a row lock is aborted with a
// serialization failure once the holder commits an update to that row, so
// contended flows must retry to not lose the write.
func withTxRetry(ctx context.Context, attempt func() error) error {
	var err error
	for i := 0; i <= txMaxRetries; i++ {
		if err = attempt(); err == nil || !retryableTxError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 10 * time.Millisecond):
		}
	}
	return err
}

// retryableTxError reports whether the transaction failed in a way a retry
// can resolve: serialization_failure (40001) or deadlock_detected (40P01).
func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
