package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
)

// postgres codes for lock_timeout, serialization failure and deadlock.
var busyCodes = map[string]struct{}{
	"55P03": {},
	"40001": {},
	"40P01": {},
}

// translateError maps lock contention and transaction timeouts to
// ErrBusy. Anything else is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrBusy) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", domain.ErrBusy, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := busyCodes[pgErr.Code]; ok {
			return fmt.Errorf("%w: %v", domain.ErrBusy, err)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %v", domain.ErrBusy, err)
		}
	}

	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}

	return false
}

func slotConflict(trainerID uint, at time.Time) error {
	return &domain.SlotConflictError{TrainerID: trainerID, Instants: []time.Time{at}}
}
