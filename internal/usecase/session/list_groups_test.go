package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/testutil"
)

func TestListRecurringGroups(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 5)
	members := f.bookGroup(t, client.ID, 4)
	f.book(t, client.ID, firstMonday.Add(4*time.Hour))
	ctx := context.Background()

	// week one attended, week two cancelled
	present := domain.AttendancePresent
	_, err := f.repo.TransitionStatus(ctx, members[0].ID, domain.StatusScheduled, domain.StatusCompleted,
		domain.Transition{At: members[0].StartTime, AttendanceStatus: &present})
	require.NoError(t, err)
	_, err = NewCancel(f.repo, f.engine, f.events, f.clock()).
		Execute(ctx, members[1].ID, clientActor(client), CancelInput{})
	require.NoError(t, err)

	f.now = members[1].StartTime.Add(time.Hour)
	uc := NewListRecurringGroups(f.repo, f.clock())

	groups, err := uc.Execute(ctx, clientActor(client), 0)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, groupID, g.GroupID)
	assert.Equal(t, trainerID, g.TrainerID)
	assert.Equal(t, 4, g.Total)
	assert.Equal(t, 1, g.Completed)
	assert.Equal(t, 1, g.Cancelled)
	assert.Equal(t, 2, g.Upcoming)
	assert.Equal(t, 0, g.NoShow)
	assert.Equal(t, firstMonday, g.FirstStart)
	assert.Equal(t, members[3].StartTime.UTC(), g.LastStart)
	require.NotNil(t, g.NextStart)
	assert.Equal(t, members[2].StartTime.UTC(), *g.NextStart)

	// admins and the trainer name the client
	groups, err = uc.Execute(ctx, admin, client.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	groups, err = uc.Execute(ctx, trainer, client.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	groups, err = uc.Execute(ctx, actor.Actor{ID: trainerID + 1, Role: actor.RoleTrainer}, client.ID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestListRecurringGroupsAccess(t *testing.T) {
	f := newFixture(t, sunday)
	client := testutil.SeedClient(t, f.db, 0)
	uc := NewListRecurringGroups(f.repo, f.clock())
	ctx := context.Background()

	groups, err := uc.Execute(ctx, clientActor(client), client.ID)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	_, err = uc.Execute(ctx, clientActor(client), client.ID+1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Execute(ctx, admin, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(ctx, actor.Actor{ID: 3, Role: "guest"}, client.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
