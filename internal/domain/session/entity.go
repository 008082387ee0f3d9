package session

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// ===============================
// Access
// ===============================

// IsParticipant: the booked client, the assigned trainer, or an admin.
func IsParticipant(s *models.Session, by actor.Actor) bool {
	switch by.Role {
	case actor.RoleAdmin:
		return true
	case actor.RoleTrainer:
		return s.TrainerID == by.ID
	case actor.RoleClient:
		return s.ClientID != nil && *s.ClientID == by.ID
	default:
		return false
	}
}

// CanManage: the assigned trainer or an admin.
func CanManage(s *models.Session, by actor.Actor) bool {
	return by.IsAdmin() || (by.Role == actor.RoleTrainer && s.TrainerID == by.ID)
}

// CanReschedule: the booked client or an admin. Trainers cancel instead.
func CanReschedule(s *models.Session, by actor.Actor) bool {
	if by.IsAdmin() {
		return true
	}
	return by.Role == actor.RoleClient && s.ClientID != nil && *s.ClientID == by.ID
}

// ===============================
// Domain Actions
// ===============================

func CancelTransition(by actor.Actor, reason string, o policy.Outcome, now time.Time) Transition {
	fee := o.Fee
	return Transition{
		At:                 now,
		CancelledBy:        &by.ID,
		CancellationReason: &reason,
		LateFeeApplied:     &o.FeeApplies,
		LateFeeAmount:      &fee,
		CreditRestored:     &o.CreditRestored,
	}
}

func ConfirmTransition(by actor.Actor, now time.Time) Transition {
	return Transition{
		At:          now,
		ConfirmedBy: &by.ID,
	}
}

type Attendance struct {
	Status     AttendanceStatus
	Reason     string
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

// AttendanceTransition builds the attendance columns. Present and late
// check in at now unless a check-in time was given.
func AttendanceTransition(by actor.Actor, a Attendance, now time.Time) (Transition, error) {
	status := a.Status
	t := Transition{
		At:                   now,
		AttendanceStatus:     &status,
		AttendanceRecordedBy: &by.ID,
		CheckOutAt:           a.CheckOutAt,
	}

	switch a.Status {
	case AttendancePresent, AttendanceLate:
		checkIn := now
		if a.CheckInAt != nil {
			checkIn = *a.CheckInAt
		}
		if a.CheckOutAt != nil && a.CheckOutAt.Before(checkIn) {
			return Transition{}, fmt.Errorf("%w: check-out before check-in", ErrInvalidInput)
		}
		t.CheckInAt = &checkIn
	case AttendanceNoShow:
		if a.CheckInAt != nil {
			return Transition{}, fmt.Errorf("%w: no-show cannot have a check-in", ErrInvalidInput)
		}
		reason := a.Reason
		t.NoShowReason = &reason
	default:
		return Transition{}, fmt.Errorf("%w: attendance status %q", ErrInvalidInput, a.Status)
	}

	return t, nil
}
