package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
	"github.com/BruksfildServices01/trainer-scheduler/internal/testutil"
)

func TestAllocateCredit(t *testing.T) {
	f := newFixture(t)
	client := testutil.SeedClient(t, f.db, 2)
	admin := actor.Actor{ID: 1, Role: actor.RoleAdmin}
	uc := NewAllocateCredit(f.repo, f.events, WithMetrics(f.metrics))

	f.events.EXPECT().Emit(domain.EventCreditsAllocated, domain.CreditsAllocated{
		ActorID:  admin.ID,
		ClientID: client.ID,
		Amount:   5,
		Reason:   "10-pack bought at the front desk",
		Balance:  7,
	})

	balance, err := uc.Execute(context.Background(), admin, AllocateCreditInput{
		ClientID: client.ID,
		Sessions: 5,
		Reason:   "  10-pack bought at the front desk ",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, balance)
	assert.Equal(t, 7, f.balance(t, client.ID))

	var row models.CreditTransaction
	require.NoError(t, f.db.Where("client_id = ?", client.ID).Last(&row).Error)
	assert.Equal(t, domain.ReasonAdminAllocation, row.Reason)
	assert.Equal(t, 5, row.Delta)
	assert.Equal(t, 7, row.BalanceAfter)
	assert.Equal(t, "10-pack bought at the front desk", row.Note)
}

func TestAllocateCreditRejects(t *testing.T) {
	f := newFixture(t)
	client := testutil.SeedClient(t, f.db, 2)
	admin := actor.Actor{ID: 1, Role: actor.RoleAdmin}
	uc := NewAllocateCredit(f.repo, f.events)
	f.events.EXPECT().Emit(gomock.Any(), gomock.Any()).Times(0)

	tests := []struct {
		name string
		by   actor.Actor
		in   AllocateCreditInput
		want error
	}{
		{"client", clientActor(client), AllocateCreditInput{ClientID: client.ID, Sessions: 1}, domain.ErrUnauthorized},
		{"trainer", actor.Actor{ID: trainerID, Role: actor.RoleTrainer}, AllocateCreditInput{ClientID: client.ID, Sessions: 1}, domain.ErrUnauthorized},
		{"zero", admin, AllocateCreditInput{ClientID: client.ID}, domain.ErrInvalidInput},
		{"negative", admin, AllocateCreditInput{ClientID: client.ID, Sessions: -3}, domain.ErrInvalidInput},
		{"too many", admin, AllocateCreditInput{ClientID: client.ID, Sessions: MaxAllocation + 1}, domain.ErrInvalidInput},
		{"no client", admin, AllocateCreditInput{Sessions: 1}, domain.ErrInvalidInput},
		{"unknown client", admin, AllocateCreditInput{ClientID: 999, Sessions: 1}, domain.ErrClientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.by, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 2, f.balance(t, client.ID))
}
