package session

import (
	"context"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type GetSession struct {
	repo domain.Store
}

func NewGetSession(repo domain.Store) *GetSession {
	return &GetSession{repo: repo}
}

func (uc *GetSession) Execute(ctx context.Context, sessionID uint, by actor.Actor) (*models.Session, error) {
	return loadForParticipant(ctx, uc.repo, sessionID, by)
}

func loadForParticipant(ctx context.Context, repo domain.Store, sessionID uint, by actor.Actor) (*models.Session, error) {
	s, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !domain.IsParticipant(s, by) {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}

func loadForManager(ctx context.Context, repo domain.Store, sessionID uint, by actor.Actor) (*models.Session, error) {
	s, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManage(s, by) {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}
