package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type WaiveResult struct {
	Session *models.Session `json:"session"`
	Balance int             `json:"balance"`
}

// WaiveNoShow is the admin override that returns the credit of a no-show
// session. It succeeds at most once per session.
type WaiveNoShow struct {
	repo   domain.Repository
	events domain.EventEmitter
	opts   options
}

func NewWaiveNoShow(repo domain.Repository, events domain.EventEmitter, opts ...Option) *WaiveNoShow {
	return &WaiveNoShow{repo: repo, events: events, opts: buildOptions(opts)}
}

func (uc *WaiveNoShow) Execute(
	ctx context.Context,
	sessionID uint,
	by actor.Actor,
	reason string,
) (*WaiveResult, error) {
	if !by.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins waive no-shows", domain.ErrUnauthorized)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a waiver reason is required", domain.ErrInvalidInput)
	}

	now := uc.opts.now()
	res := &WaiveResult{}

	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		s, err := tx.MarkNoShowCreditRestored(ctx, sessionID, by.ID, reason, now)
		if err != nil {
			return err
		}
		if s.ClientID == nil {
			return fmt.Errorf("%w: session %d has no client", domain.ErrInvalidTransition, sessionID)
		}

		balance, err := tx.Credit(ctx, *s.ClientID, s.CreditCost, domain.LedgerEntry{
			Reason:    domain.ReasonNoShowWaiver,
			SessionID: &s.ID,
			GroupID:   s.RecurringGroupID,
		})
		if err != nil {
			return err
		}

		res.Session = s
		res.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.opts.metrics.RecordCreditRestored(res.Session.CreditCost)
	uc.opts.logger.InfoContext(ctx, "no-show waived",
		"session_id", sessionID,
		"actor_id", by.ID,
	)
	uc.events.Emit(domain.EventNoShowWaived, domain.SessionStatusChanged{
		ActorID:   by.ID,
		SessionID: sessionID,
		Status:    domain.StatusNoShow,
		Reason:    reason,
	})

	return res, nil
}
