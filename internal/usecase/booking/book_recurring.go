package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/recurrence"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BookRecurringInput struct {
	ClientID  uint
	TrainerID uint
	Pattern   recurrence.Pattern

	// zero means the configured default
	DurationMinutes int
}

type BookingResult struct {
	// GroupID is nil for single bookings.
	GroupID  *string
	Sessions []models.Session
	Balance  int
}

func (r BookingResult) SessionIDs() []uint {
	ids := make([]uint, 0, len(r.Sessions))
	for _, s := range r.Sessions {
		ids = append(ids, s.ID)
	}
	return ids
}

// ======================================================
// USE CASE
// ======================================================

type BookRecurring struct {
	repo        domain.Repository
	assignments domain.AssignmentChecker
	events      domain.EventEmitter
	opts        options
}

func NewBookRecurring(
	repo domain.Repository,
	assignments domain.AssignmentChecker,
	events domain.EventEmitter,
	opts ...Option,
) *BookRecurring {
	return &BookRecurring{
		repo:        repo,
		assignments: assignments,
		events:      events,
		opts:        buildOptions(opts),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookRecurring) Execute(
	ctx context.Context,
	by actor.Actor,
	in BookRecurringInput,
) (*BookingResult, error) {
	res, err := uc.execute(ctx, by, in)

	outcome := "ok"
	if err != nil {
		outcome = httperr.CodeOf(err)
		if outcome == "" {
			outcome = "error"
		}
		uc.opts.logger.WarnContext(ctx, "booking rejected",
			"client_id", in.ClientID,
			"trainer_id", in.TrainerID,
			"occurrences", in.Pattern.Occurrences,
			"error", err,
		)
		uc.opts.metrics.RecordBooking(outcome, 0)
		return nil, err
	}

	uc.opts.metrics.RecordBooking(outcome, len(res.Sessions))
	return res, nil
}

func (uc *BookRecurring) execute(
	ctx context.Context,
	by actor.Actor,
	in BookRecurringInput,
) (*BookingResult, error) {

	// --------------------------------------------------
	// 1️⃣ Input
	// --------------------------------------------------
	if in.ClientID == 0 || in.TrainerID == 0 {
		return nil, fmt.Errorf("%w: client_id and trainer_id are required", domain.ErrInvalidInput)
	}
	if in.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	duration := uc.opts.defaultDuration
	if in.DurationMinutes > 0 {
		duration = time.Duration(in.DurationMinutes) * time.Minute
	}

	// --------------------------------------------------
	// 2️⃣ Authorization
	// --------------------------------------------------
	if err := uc.authorize(ctx, by, in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Occurrences
	// --------------------------------------------------
	starts, err := recurrence.ExpandOccurrences(in.Pattern)
	if err != nil {
		return nil, err
	}

	now := uc.opts.now()
	for _, start := range starts {
		if !start.After(now) {
			return nil, fmt.Errorf("%w: occurrence %s is not in the future",
				recurrence.ErrInvalidPattern, start.Format(time.RFC3339))
		}
	}

	var groupID *string
	if len(starts) > 1 {
		id := uuid.NewString()
		groupID = &id
	}

	// --------------------------------------------------
	// 4️⃣ Debit + sessions, all or nothing
	// --------------------------------------------------
	result := &BookingResult{GroupID: groupID}

	err = uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		balance, err := tx.Debit(ctx, in.ClientID, len(starts), domain.LedgerEntry{
			Reason:  domain.ReasonBooking,
			GroupID: groupID,
		})
		if err != nil {
			return err
		}

		conflicts, err := tx.FindConflicts(ctx, in.TrainerID, starts, duration)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.SlotConflictError{TrainerID: in.TrainerID, Instants: conflicts}
		}

		sessions := make([]models.Session, 0, len(starts))
		for _, start := range starts {
			s, err := tx.CreateSession(ctx, domain.NewSession{
				ClientID:   in.ClientID,
				TrainerID:  in.TrainerID,
				Start:      start,
				Duration:   duration,
				GroupID:    groupID,
				CreditCost: 1,
			})
			if err != nil {
				return err
			}
			sessions = append(sessions, *s)
		}

		result.Sessions = sessions
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Notify (after commit)
	// --------------------------------------------------
	booked := domain.SessionsBooked{
		ActorID:    by.ID,
		ClientID:   in.ClientID,
		TrainerID:  in.TrainerID,
		SessionIDs: result.SessionIDs(),
		Starts:     starts,
		Balance:    result.Balance,
	}
	if groupID != nil {
		booked.GroupID = *groupID
	}
	uc.events.Emit(domain.EventSessionsBooked, booked)

	uc.opts.logger.InfoContext(ctx, "sessions booked",
		"client_id", in.ClientID,
		"trainer_id", in.TrainerID,
		"count", len(result.Sessions),
		"balance", result.Balance,
	)

	return result, nil
}

func (uc *BookRecurring) authorize(ctx context.Context, by actor.Actor, in BookRecurringInput) error {
	switch by.Role {
	case actor.RoleAdmin:
	case actor.RoleClient:
		if by.ID != in.ClientID {
			return fmt.Errorf("%w: clients book only for themselves", domain.ErrUnauthorized)
		}
	case actor.RoleTrainer:
		if by.ID != in.TrainerID {
			return fmt.Errorf("%w: trainers book only on their own calendar", domain.ErrUnauthorized)
		}
	default:
		return domain.ErrUnauthorized
	}

	active, err := uc.assignments.IsActiveAssignment(ctx, in.ClientID, in.TrainerID)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w: client %d is not assigned to trainer %d",
			domain.ErrUnauthorized, in.ClientID, in.TrainerID)
	}
	return nil
}
