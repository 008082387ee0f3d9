package session

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type AttendanceInput struct {
	Status     domain.AttendanceStatus
	Reason     string
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

// RecordAttendance closes a held session as completed or no-show. A
// no-show keeps the booking debit; only WaiveNoShow gives it back.
type RecordAttendance struct {
	repo   domain.Store
	events domain.EventEmitter
	opts   options
}

func NewRecordAttendance(repo domain.Store, events domain.EventEmitter, opts ...Option) *RecordAttendance {
	return &RecordAttendance{repo: repo, events: events, opts: buildOptions(opts)}
}

func (uc *RecordAttendance) Execute(
	ctx context.Context,
	sessionID uint,
	by actor.Actor,
	in AttendanceInput,
) (*models.Session, error) {
	s, err := loadForManager(ctx, uc.repo, sessionID, by)
	if err != nil {
		return nil, err
	}

	status := domain.Status(s.Status)
	if !status.CanRecordAttendance() {
		return nil, fmt.Errorf("%w: cannot record attendance on a %s session", domain.ErrInvalidTransition, status)
	}

	t, err := domain.AttendanceTransition(by, domain.Attendance{
		Status:     in.Status,
		Reason:     in.Reason,
		CheckInAt:  in.CheckInAt,
		CheckOutAt: in.CheckOutAt,
	}, uc.opts.now())
	if err != nil {
		return nil, err
	}

	target := in.Status.TargetStatus()
	updated, err := uc.repo.TransitionStatus(ctx, s.ID, status, target, t)
	if err != nil {
		return nil, lostRace(err, s.ID)
	}

	uc.opts.metrics.RecordAttendance(string(in.Status))

	event := domain.EventSessionCompleted
	if target == domain.StatusNoShow {
		event = domain.EventNoShowRecorded
	}
	uc.events.Emit(event, domain.SessionStatusChanged{
		ActorID:    by.ID,
		SessionID:  updated.ID,
		Status:     target,
		Attendance: in.Status,
		Reason:     in.Reason,
	})

	return updated, nil
}
