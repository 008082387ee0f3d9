package session

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RescheduleInput struct {
	Start time.Time
	// ConfirmedLate acknowledges the credit charged for moving a session
	// inside the notice window.
	ConfirmedLate bool
}

type RescheduleResult struct {
	Session        *models.Session `json:"session"`
	PreviousStart  time.Time       `json:"previous_start"`
	IsLate         bool            `json:"is_late"`
	CreditDeducted bool            `json:"credit_deducted"`
	// Balance is set when a credit was deducted.
	Balance *int `json:"balance,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// Reschedule moves a booked session to a new start. Inside the notice
// window a client pays one session credit for the move; admins never do.
type Reschedule struct {
	repo   domain.Repository
	policy *policy.Engine
	events domain.EventEmitter
	opts   options
}

func NewReschedule(
	repo domain.Repository,
	engine *policy.Engine,
	events domain.EventEmitter,
	opts ...Option,
) *Reschedule {
	return &Reschedule{
		repo:   repo,
		policy: engine,
		events: events,
		opts:   buildOptions(opts),
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	sessionID uint,
	by actor.Actor,
	in RescheduleInput,
) (*RescheduleResult, error) {
	s, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !domain.CanReschedule(s, by) {
		return nil, fmt.Errorf("%w: only the booked client or an admin can reschedule", domain.ErrUnauthorized)
	}

	now := uc.opts.now()
	if !in.Start.After(now) {
		return nil, fmt.Errorf("%w: the new start must be in the future", domain.ErrInvalidInput)
	}

	var res *RescheduleResult
	err = uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		current, err := tx.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}

		status := domain.Status(current.Status)
		if status.IsTerminal() {
			return fmt.Errorf("%w: session %d is already %s", domain.ErrAlreadyFinalized, current.ID, status)
		}
		if !status.IsReschedulable() {
			return fmt.Errorf("%w: session %d is %s", domain.ErrInvalidTransition, current.ID, status)
		}
		if !current.StartTime.After(now) {
			return fmt.Errorf("%w: session %d has already started", domain.ErrInvalidTransition, current.ID)
		}
		if current.StartTime.Equal(in.Start) {
			return fmt.Errorf("%w: session %d already starts then", domain.ErrInvalidInput, current.ID)
		}

		late := !by.IsAdmin() && uc.policy.IsLate(now, current.StartTime)
		if late && !in.ConfirmedLate {
			return fmt.Errorf("%w: moving this session costs one session credit", domain.ErrLateConfirmationRequired)
		}

		moved, err := tx.RescheduleSession(ctx, current.ID, status, current.StartTime, in.Start)
		if err != nil {
			return lostRace(err, current.ID)
		}

		res = &RescheduleResult{
			Session:       moved,
			PreviousStart: current.StartTime.UTC(),
			IsLate:        late,
		}

		if late && current.ClientID != nil {
			balance, err := tx.Debit(ctx, *current.ClientID, 1, domain.LedgerEntry{
				Reason:    domain.ReasonLateReschedule,
				SessionID: &current.ID,
				GroupID:   current.RecurringGroupID,
			})
			if err != nil {
				return err
			}
			res.CreditDeducted = true
			res.Balance = &balance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.opts.metrics.RecordReschedule(res.IsLate)
	uc.opts.logger.InfoContext(ctx, "session rescheduled",
		"session_id", sessionID,
		"actor_id", by.ID,
		"from", res.PreviousStart,
		"to", res.Session.StartTime,
		"late", res.IsLate,
	)
	uc.events.Emit(domain.EventRescheduled, domain.SessionRescheduled{
		ActorID:        by.ID,
		SessionID:      res.Session.ID,
		ClientID:       res.Session.ClientID,
		TrainerID:      res.Session.TrainerID,
		PreviousStart:  res.PreviousStart,
		Start:          res.Session.StartTime,
		IsLate:         res.IsLate,
		CreditDeducted: res.CreditDeducted,
	})

	return res, nil
}
