package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/recurrence"
)

type BookSingleInput struct {
	ClientID        uint
	TrainerID       uint
	Start           time.Time
	DurationMinutes int
}

// BookSingle is a one-occurrence recurring booking.
type BookSingle struct {
	recurring *BookRecurring
}

func NewBookSingle(recurring *BookRecurring) *BookSingle {
	return &BookSingle{recurring: recurring}
}

func (uc *BookSingle) Execute(
	ctx context.Context,
	by actor.Actor,
	in BookSingleInput,
) (*BookingResult, error) {
	return uc.recurring.Execute(ctx, by, BookRecurringInput{
		ClientID:        in.ClientID,
		TrainerID:       in.TrainerID,
		Pattern:         recurrence.Single(in.Start),
		DurationMinutes: in.DurationMinutes,
	})
}
