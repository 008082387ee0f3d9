package session

import "fmt"

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusAvailable Status = "available"
	StatusRequested Status = "requested"
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// OccupyingStatuses hold the trainer's slot.
var OccupyingStatuses = []Status{
	StatusAvailable,
	StatusRequested,
	StatusScheduled,
	StatusConfirmed,
}

var transitions = map[Status][]Status{
	StatusAvailable: {StatusRequested, StatusScheduled},
	StatusRequested: {StatusScheduled, StatusConfirmed, StatusCancelled},
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ===============================
// Validations
// ===============================

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsCancellable define se uma sessão ainda pode ser cancelada
func (s Status) IsCancellable() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusRequested
}

// IsReschedulable: only a booked slot can move.
func (s Status) IsReschedulable() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// CanRecordAttendance: attendance closes a held slot.
func (s Status) CanRecordAttendance() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// CanTransition rejects every move out of a terminal status and every move
// not listed in the lifecycle table.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// InitialStatus is the status of every freshly booked session.
func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Attendance
// ===============================

type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "pending"
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceNoShow  AttendanceStatus = "no_show"
)

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceLate, AttendanceNoShow:
		return AttendanceStatus(s), nil
	default:
		return "", fmt.Errorf("%w: attendance status must be one of present, late, no_show", ErrInvalidInput)
	}
}

// TargetStatus is the session status an attendance record moves to.
func (a AttendanceStatus) TargetStatus() Status {
	if a == AttendanceNoShow {
		return StatusNoShow
	}
	return StatusCompleted
}
