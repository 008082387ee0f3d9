package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/recurrence"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/session/mock"
	"github.com/BruksfildServices01/trainer-scheduler/internal/testutil"
	"github.com/BruksfildServices01/trainer-scheduler/internal/usecase/booking"
)

var (
	sunday      = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	firstMonday = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
)

func TestBookThenCancelOnTimeAndLate(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 10)

	assignments := mock.NewMockAssignmentChecker(gomock.NewController(t))
	assignments.EXPECT().IsActiveAssignment(gomock.Any(), client.ID, trainerID).Return(true, nil)

	book := booking.NewBookRecurring(f.repo, assignments, f.events,
		booking.WithClock(func() time.Time { return f.now }))
	series, err := book.Execute(context.Background(), clientActor(client), booking.BookRecurringInput{
		ClientID:  client.ID,
		TrainerID: trainerID,
		Pattern: recurrence.Pattern{
			StartDate:   firstMonday,
			Weekdays:    []time.Weekday{time.Monday},
			TimeOfDay:   recurrence.TimeOfDay{Hour: 10},
			Occurrences: 4,
			Location:    time.UTC,
		},
	})
	require.NoError(t, err)
	require.Len(t, series.Sessions, 4)
	assert.Equal(t, 6, f.balance(t, client.ID))

	cancel := NewCancel(f.repo, f.engine, f.events, f.clock())

	second := series.Sessions[1]
	f.now = second.StartTime.Add(-48 * time.Hour)
	res, err := cancel.Execute(context.Background(), second.ID, clientActor(client), CancelInput{Reason: "travel"})
	require.NoError(t, err)
	assert.False(t, res.IsLate)
	assert.True(t, res.CreditRestored)
	assert.Equal(t, string(domain.StatusCancelled), res.Session.Status)
	assert.Equal(t, "travel", res.Session.CancellationReason)
	assert.Equal(t, 7, f.balance(t, client.ID))

	third := series.Sessions[2]
	f.now = third.StartTime.Add(-2 * time.Hour)
	res, err = cancel.Execute(context.Background(), third.ID, clientActor(client), CancelInput{ConfirmedLate: true})
	require.NoError(t, err)
	assert.True(t, res.IsLate)
	assert.True(t, res.LateFeeApplied)
	assert.False(t, res.CreditRestored)
	assert.True(t, res.FeeAmount.Equal(decimal.NewFromInt(25)))
	assert.True(t, res.Session.LateFeeAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, domain.StatusCancelled, f.status(t, third.ID))
	assert.Equal(t, 7, f.balance(t, client.ID))
}

func TestCancelTwiceIsAlreadyFinalized(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday.AddDate(0, 0, 7))
	cancel := NewCancel(f.repo, f.engine, f.events, f.clock())

	_, err := cancel.Execute(context.Background(), s.ID, clientActor(client), CancelInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.balance(t, client.ID))

	_, err = cancel.Execute(context.Background(), s.ID, clientActor(client), CancelInput{})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	assert.Equal(t, 1, f.balance(t, client.ID))
}

func TestLateCancelNeedsAcknowledgement(t *testing.T) {
	f := newFixture(t, firstMonday.Add(-time.Hour))
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday)
	cancel := NewCancel(f.repo, f.engine, f.events, f.clock())

	_, err := cancel.Execute(context.Background(), s.ID, clientActor(client), CancelInput{})
	assert.ErrorIs(t, err, domain.ErrLateConfirmationRequired)
	assert.Equal(t, domain.StatusScheduled, f.status(t, s.ID))
	assert.Equal(t, 0, f.balance(t, client.ID))
}

func TestAdminLateCancelWaivesFee(t *testing.T) {
	f := newFixture(t, firstMonday.Add(-time.Hour))
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday)

	res, err := NewCancel(f.repo, f.engine, f.events, f.clock()).
		Execute(context.Background(), s.ID, admin, CancelInput{Reason: "gym closed"})
	require.NoError(t, err)

	assert.True(t, res.IsLate)
	assert.False(t, res.LateFeeApplied)
	assert.True(t, res.FeeAmount.IsZero())
	assert.True(t, res.CreditRestored)
	require.NotNil(t, res.Balance)
	assert.Equal(t, 1, *res.Balance)
}

func TestCancelAccess(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday.AddDate(0, 0, 7))
	cancel := NewCancel(f.repo, f.engine, f.events, f.clock())

	_, err := cancel.Execute(context.Background(), s.ID, actor.Actor{ID: client.ID + 1, Role: actor.RoleClient}, CancelInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = cancel.Execute(context.Background(), s.ID, actor.Actor{ID: trainerID + 1, Role: actor.RoleTrainer}, CancelInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = cancel.Execute(context.Background(), 999, admin, CancelInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the assigned trainer may cancel
	_, err = cancel.Execute(context.Background(), s.ID, trainer, CancelInput{})
	require.NoError(t, err)
}

func TestConcurrentCancelRestoresCreditOnce(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday.AddDate(0, 0, 7))
	cancel := NewCancel(f.repo, f.engine, f.events, f.clock())

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, by := range []actor.Actor{clientActor(client), trainer} {
		wg.Add(1)
		go func(i int, by actor.Actor) {
			defer wg.Done()
			_, errs[i] = cancel.Execute(context.Background(), s.ID, by, CancelInput{})
		}(i, by)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t,
			errors.Is(err, domain.ErrAlreadyFinalized) || errors.Is(err, domain.ErrConflict),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, f.balance(t, client.ID))
}
