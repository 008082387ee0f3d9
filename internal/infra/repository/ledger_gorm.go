package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *GormRepository) Balance(ctx context.Context, clientID uint) (int, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Select("id", "available_sessions").
		First(&client, clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: client %d", domain.ErrClientNotFound, clientID)
	}
	if err != nil {
		return 0, translateError(err)
	}
	return client.AvailableSessions, nil
}

func (r *GormRepository) Debit(
	ctx context.Context,
	clientID uint,
	amount int,
	entry domain.LedgerEntry,
) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive", domain.ErrInvalidInput)
	}

	var balance int
	err := r.atomic(ctx, func(ctx context.Context, tx *GormRepository) error {
		client, err := tx.lockClient(ctx, clientID)
		if err != nil {
			return err
		}
		if client.AvailableSessions < amount {
			return &domain.InsufficientCreditError{
				ClientID:  clientID,
				Available: client.AvailableSessions,
				Requested: amount,
			}
		}

		res := tx.db.WithContext(ctx).
			Model(&models.Client{}).
			Where("id = ? AND available_sessions >= ?", clientID, amount).
			Update("available_sessions", gorm.Expr("available_sessions - ?", amount))
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.InsufficientCreditError{
				ClientID:  clientID,
				Available: client.AvailableSessions,
				Requested: amount,
			}
		}

		balance = client.AvailableSessions - amount
		return tx.journal(ctx, clientID, -amount, balance, entry)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *GormRepository) Credit(
	ctx context.Context,
	clientID uint,
	amount int,
	entry domain.LedgerEntry,
) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive", domain.ErrInvalidInput)
	}

	var balance int
	err := r.atomic(ctx, func(ctx context.Context, tx *GormRepository) error {
		client, err := tx.lockClient(ctx, clientID)
		if err != nil {
			return err
		}

		if err := tx.db.WithContext(ctx).
			Model(&models.Client{}).
			Where("id = ?", clientID).
			Update("available_sessions", gorm.Expr("available_sessions + ?", amount)).Error; err != nil {
			return translateError(err)
		}

		balance = client.AvailableSessions + amount
		return tx.journal(ctx, clientID, amount, balance, entry)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *GormRepository) lockClient(ctx context.Context, clientID uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&client, clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: client %d", domain.ErrClientNotFound, clientID)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

func (r *GormRepository) journal(
	ctx context.Context,
	clientID uint,
	delta int,
	balanceAfter int,
	entry domain.LedgerEntry,
) error {
	row := models.CreditTransaction{
		ClientID:     clientID,
		Delta:        delta,
		BalanceAfter: balanceAfter,
		Reason:       entry.Reason,
		SessionID:    entry.SessionID,
		GroupID:      entry.GroupID,
		Note:         entry.Note,
	}
	return translateError(r.db.WithContext(ctx).Create(&row).Error)
}
