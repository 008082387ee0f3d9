package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/session/mock"
	"github.com/BruksfildServices01/trainer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
	"github.com/BruksfildServices01/trainer-scheduler/internal/testutil"
)

const trainerID = uint(50)

var (
	trainer = actor.Actor{ID: trainerID, Role: actor.RoleTrainer}
	admin   = actor.Actor{ID: 1, Role: actor.RoleAdmin}
)

type fixture struct {
	db     *gorm.DB
	repo   *repository.GormRepository
	engine *policy.Engine
	events *mock.MockEventEmitter
	now    time.Time
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	db := testutil.NewSQLiteDB(t)

	f := &fixture{
		db:     db,
		repo:   repository.NewGormRepository(db),
		engine: policy.NewEngine(policy.DefaultConfig()),
		events: mock.NewMockEventEmitter(ctrl),
		now:    now,
	}
	f.events.EXPECT().Emit(gomock.Any(), gomock.Any()).AnyTimes()
	return f
}

func (f *fixture) clock() Option {
	return WithClock(func() time.Time { return f.now })
}

// book debits one credit and creates a scheduled session, the way the
// booking use case does.
func (f *fixture) book(t *testing.T, clientID uint, start time.Time) *models.Session {
	t.Helper()
	var s *models.Session
	err := f.repo.WithinTx(context.Background(), func(ctx context.Context, tx domain.Tx) error {
		if _, err := tx.Debit(ctx, clientID, 1, domain.LedgerEntry{Reason: domain.ReasonBooking}); err != nil {
			return err
		}
		var err error
		s, err = tx.CreateSession(ctx, domain.NewSession{ClientID: clientID, TrainerID: trainerID, Start: start})
		return err
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) balance(t *testing.T, clientID uint) int {
	t.Helper()
	b, err := f.repo.Balance(context.Background(), clientID)
	require.NoError(t, err)
	return b
}

func (f *fixture) status(t *testing.T, sessionID uint) domain.Status {
	t.Helper()
	s, err := f.repo.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	return domain.Status(s.Status)
}

func clientActor(c *models.Client) actor.Actor {
	return actor.Actor{ID: c.ID, Role: actor.RoleClient}
}
