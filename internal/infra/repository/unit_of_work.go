package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
)

// GormRepository implements the credit ledger and the session store over a
// single *gorm.DB. Inside WithinTx the same type is bound to the open
// transaction, so ledger and store writes commit or roll back together.
type GormRepository struct {
	db          *gorm.DB
	inTx        bool
	lockTimeout time.Duration
	txTimeout   time.Duration
}

var _ domain.Repository = (*GormRepository)(nil)

type Option func(*GormRepository)

// WithLockTimeout bounds how long a statement waits for a row lock.
// Only applied on postgres.
func WithLockTimeout(d time.Duration) Option {
	return func(r *GormRepository) { r.lockTimeout = d }
}

// WithTxTimeout bounds a whole transaction.
func WithTxTimeout(d time.Duration) Option {
	return func(r *GormRepository) { r.txTimeout = d }
}

func NewGormRepository(db *gorm.DB, opts ...Option) *GormRepository {
	r := &GormRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *GormRepository) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.Tx) error,
) error {
	if r.inTx {
		return fn(ctx, r)
	}

	if r.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.txTimeout)
		defer cancel()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockTimeout > 0 && r.isPostgres() {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}

		return fn(ctx, &GormRepository{
			db:          tx,
			inTx:        true,
			lockTimeout: r.lockTimeout,
			txTimeout:   r.txTimeout,
		})
	})

	return translateError(err)
}

// atomic runs fn in the current transaction, or opens one.
func (r *GormRepository) atomic(
	ctx context.Context,
	fn func(ctx context.Context, tx *GormRepository) error,
) error {
	if r.inTx {
		return fn(ctx, r)
	}
	return r.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return fn(ctx, tx.(*GormRepository))
	})
}

func (r *GormRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}
