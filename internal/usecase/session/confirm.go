package session

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// Confirm lets the session's trainer or an admin confirm a scheduled or
// requested session.
type Confirm struct {
	repo   domain.Store
	events domain.EventEmitter
	opts   options
}

func NewConfirm(repo domain.Store, events domain.EventEmitter, opts ...Option) *Confirm {
	return &Confirm{repo: repo, events: events, opts: buildOptions(opts)}
}

func (uc *Confirm) Execute(ctx context.Context, sessionID uint, by actor.Actor) (*models.Session, error) {
	s, err := loadForManager(ctx, uc.repo, sessionID, by)
	if err != nil {
		return nil, err
	}

	status := domain.Status(s.Status)
	if status.IsTerminal() {
		return nil, fmt.Errorf("%w: session %d is already %s", domain.ErrAlreadyFinalized, s.ID, status)
	}

	updated, err := uc.repo.TransitionStatus(ctx, s.ID, status, domain.StatusConfirmed,
		domain.ConfirmTransition(by, uc.opts.now()))
	if err != nil {
		return nil, lostRace(err, s.ID)
	}

	uc.events.Emit(domain.EventSessionConfirmed, domain.SessionStatusChanged{
		ActorID:   by.ID,
		SessionID: updated.ID,
		Status:    domain.StatusConfirmed,
	})

	return updated, nil
}
