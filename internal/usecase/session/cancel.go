package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CancelInput struct {
	Reason string
	// ConfirmedLate acknowledges a late fee shown by the preview.
	ConfirmedLate bool
}

type CancelResult struct {
	Session        *models.Session `json:"session"`
	IsLate         bool            `json:"is_late"`
	LateFeeApplied bool            `json:"late_fee_applied"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	CreditRestored bool            `json:"credit_restored"`
	// Balance is set when a credit was restored.
	Balance *int `json:"balance,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type Cancel struct {
	repo   domain.Repository
	policy *policy.Engine
	events domain.EventEmitter
	opts   options
}

func NewCancel(
	repo domain.Repository,
	engine *policy.Engine,
	events domain.EventEmitter,
	opts ...Option,
) *Cancel {
	return &Cancel{
		repo:   repo,
		policy: engine,
		events: events,
		opts:   buildOptions(opts),
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	sessionID uint,
	by actor.Actor,
	in CancelInput,
) (*CancelResult, error) {

	if _, err := loadForParticipant(ctx, uc.repo, sessionID, by); err != nil {
		return nil, err
	}

	now := uc.opts.now()
	var res *CancelResult

	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		// the preview may be stale; decide on the row as it is now
		current, err := tx.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}

		res, err = cancelInTx(ctx, tx, uc.policy, current, by, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.opts.metrics.RecordCancellation(res.IsLate, res.CreditRestored)
	uc.opts.logger.InfoContext(ctx, "session cancelled",
		"session_id", sessionID,
		"actor_id", by.ID,
		"late", res.IsLate,
		"credit_restored", res.CreditRestored,
	)
	uc.events.Emit(domain.EventSessionCancelled, cancelledEvent(by, res, in.Reason))

	return res, nil
}

// cancelInTx moves one session to cancelled and restores its credit when
// the policy says so. Both writes belong to tx.
func cancelInTx(
	ctx context.Context,
	tx domain.Tx,
	engine *policy.Engine,
	s *models.Session,
	by actor.Actor,
	in CancelInput,
	now time.Time,
) (*CancelResult, error) {
	status := domain.Status(s.Status)
	if status.IsTerminal() {
		return nil, fmt.Errorf("%w: session %d is already %s", domain.ErrAlreadyFinalized, s.ID, status)
	}
	if !status.IsCancellable() {
		return nil, fmt.Errorf("%w: session %d is %s", domain.ErrInvalidTransition, s.ID, status)
	}

	out := engine.Evaluate(now, s.StartTime, by.Role)
	if out.FeeApplies && !in.ConfirmedLate {
		return nil, fmt.Errorf("%w: late fee of %s must be acknowledged",
			domain.ErrLateConfirmationRequired, out.Fee.StringFixed(2))
	}

	reason := strings.TrimSpace(in.Reason)
	updated, err := tx.TransitionStatus(ctx, s.ID, status, domain.StatusCancelled,
		domain.CancelTransition(by, reason, out, now))
	if err != nil {
		return nil, lostRace(err, s.ID)
	}

	res := &CancelResult{
		Session:        updated,
		IsLate:         out.IsLate,
		LateFeeApplied: out.FeeApplies,
		FeeAmount:      out.Fee,
		CreditRestored: out.CreditRestored,
	}

	if out.CreditRestored && s.ClientID != nil && s.CreditCost > 0 {
		sessionID := s.ID
		balance, err := tx.Credit(ctx, *s.ClientID, s.CreditCost, domain.LedgerEntry{
			Reason:    domain.ReasonCancellation,
			SessionID: &sessionID,
			GroupID:   s.RecurringGroupID,
		})
		if err != nil {
			return nil, err
		}
		res.Balance = &balance
	}

	return res, nil
}

func cancelledEvent(by actor.Actor, res *CancelResult, reason string) domain.SessionCancelled {
	return domain.SessionCancelled{
		ActorID:        by.ID,
		SessionID:      res.Session.ID,
		ClientID:       res.Session.ClientID,
		TrainerID:      res.Session.TrainerID,
		Reason:         reason,
		IsLate:         res.IsLate,
		LateFeeApplied: res.LateFeeApplied,
		FeeAmount:      res.FeeAmount,
		CreditRestored: res.CreditRestored,
	}
}
