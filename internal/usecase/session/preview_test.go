package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/testutil"
)

func TestPreviewLateBoundary(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday)
	uc := NewEvaluateCancellation(f.repo, f.engine, f.clock())

	f.now = firstMonday.Add(-24 * time.Hour)
	p, err := uc.Execute(context.Background(), s.ID, clientActor(client))
	require.NoError(t, err)
	assert.True(t, p.Allowed)
	assert.False(t, p.IsLate)
	assert.True(t, p.CreditRestored)
	assert.False(t, p.ConfirmationRequired)
	assert.Equal(t, 24.0, p.HoursUntilStart)
	assert.Equal(t, 24, p.RequiredNoticeHours)

	f.now = firstMonday.Add(-24*time.Hour + time.Second)
	p, err = uc.Execute(context.Background(), s.ID, clientActor(client))
	require.NoError(t, err)
	assert.True(t, p.IsLate)
	assert.True(t, p.FeeApplies)
	assert.False(t, p.CreditRestored)
	assert.True(t, p.ConfirmationRequired)
	assert.Equal(t, "25.00", p.FeeAmount.StringFixed(2))
	assert.NotEmpty(t, p.Summary)

	// an admin is told the fee would be waived
	p, err = uc.Execute(context.Background(), s.ID, admin)
	require.NoError(t, err)
	assert.True(t, p.IsLate)
	assert.False(t, p.ConfirmationRequired)
	assert.True(t, p.CreditRestored)

	// previews never write
	assert.Equal(t, domain.StatusScheduled, f.status(t, s.ID))
	assert.Equal(t, 0, f.balance(t, client.ID))
}

func TestPreviewHoursAndFinalizedSessions(t *testing.T) {
	f := newFixture(t, firstMonday.Add(-90*time.Minute-4*time.Minute))
	client := testutil.SeedClient(t, f.db, 1)
	s := f.book(t, client.ID, firstMonday)
	uc := NewEvaluateCancellation(f.repo, f.engine, f.clock())

	p, err := uc.Execute(context.Background(), s.ID, trainer)
	require.NoError(t, err)
	assert.Equal(t, 1.6, p.HoursUntilStart)

	f.now = firstMonday.Add(time.Hour)
	p, err = uc.Execute(context.Background(), s.ID, trainer)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.HoursUntilStart)

	_, err = NewCancel(f.repo, f.engine, f.events, f.clock()).
		Execute(context.Background(), s.ID, admin, CancelInput{})
	require.NoError(t, err)

	p, err = uc.Execute(context.Background(), s.ID, clientActor(client))
	require.NoError(t, err)
	assert.False(t, p.Allowed)
	assert.Equal(t, domain.StatusCancelled, p.Status)

	_, err = uc.Execute(context.Background(), 999, admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
