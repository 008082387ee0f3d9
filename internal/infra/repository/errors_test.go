package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("syntax error")

	tests := []struct {
		name string
		err  error
		busy bool
	}{
		{"postgres lock timeout", &pgconn.PgError{Code: "55P03"}, true},
		{"postgres serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"postgres deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("begin: %w", context.DeadlineExceeded), true},
		{"already busy", fmt.Errorf("%w: earlier", domain.ErrBusy), true},
		{"plain", plain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.busy, errors.Is(got, domain.ErrBusy))
			if !tt.busy {
				assert.Equal(t, tt.err, got)
			}
		})
	}

	assert.NoError(t, translateError(nil))
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped postgres", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, false},
		{"postgres check violation", &pgconn.PgError{Code: "23514"}, false},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKey(tt.err))
		})
	}
}

func TestWithinTxTimeoutIsBusy(t *testing.T) {
	repo, db := newRepo(t)
	repo = NewGormRepository(db, WithTxTimeout(10*time.Millisecond))

	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx domain.Tx) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBusy)
}
