package session

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventSessionsBooked   = "sessions.booked"
	EventSessionCancelled = "session.cancelled"
	EventGroupCancelled   = "group.cancelled"
	EventSessionConfirmed = "session.confirmed"
	EventSessionCompleted = "session.completed"
	EventNoShowRecorded   = "session.no_show"
	EventNoShowWaived     = "session.no_show_waived"
	EventRescheduled      = "session.rescheduled"
	EventCreditsAllocated = "credits.allocated"
)

type SessionsBooked struct {
	ActorID    uint        `json:"actor_id"`
	ClientID   uint        `json:"client_id"`
	TrainerID  uint        `json:"trainer_id"`
	GroupID    string      `json:"group_id,omitempty"`
	SessionIDs []uint      `json:"session_ids"`
	Starts     []time.Time `json:"starts"`
	Balance    int         `json:"balance"`
}

func (e SessionsBooked) Subject() (string, uint, uint) {
	var first uint
	if len(e.SessionIDs) > 0 {
		first = e.SessionIDs[0]
	}
	return "session", first, e.ActorID
}

type SessionCancelled struct {
	ActorID        uint            `json:"actor_id"`
	SessionID      uint            `json:"session_id"`
	ClientID       *uint           `json:"client_id"`
	TrainerID      uint            `json:"trainer_id"`
	Reason         string          `json:"reason,omitempty"`
	IsLate         bool            `json:"is_late"`
	LateFeeApplied bool            `json:"late_fee_applied"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	CreditRestored bool            `json:"credit_restored"`
}

func (e SessionCancelled) Subject() (string, uint, uint) {
	return "session", e.SessionID, e.ActorID
}

type GroupCancelled struct {
	ActorID         uint   `json:"actor_id"`
	GroupID         string `json:"group_id"`
	SessionIDs      []uint `json:"session_ids"`
	CreditsRestored int    `json:"credits_restored"`
}

func (e GroupCancelled) Subject() (string, uint, uint) {
	return "recurring_group", 0, e.ActorID
}

type SessionStatusChanged struct {
	ActorID   uint   `json:"actor_id"`
	SessionID uint   `json:"session_id"`
	Status    Status `json:"status"`
	// Attendance is set for attendance records only.
	Attendance AttendanceStatus `json:"attendance,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

func (e SessionStatusChanged) Subject() (string, uint, uint) {
	return "session", e.SessionID, e.ActorID
}

type SessionRescheduled struct {
	ActorID        uint      `json:"actor_id"`
	SessionID      uint      `json:"session_id"`
	ClientID       *uint     `json:"client_id"`
	TrainerID      uint      `json:"trainer_id"`
	PreviousStart  time.Time `json:"previous_start"`
	Start          time.Time `json:"start"`
	IsLate         bool      `json:"is_late"`
	CreditDeducted bool      `json:"credit_deducted"`
}

func (e SessionRescheduled) Subject() (string, uint, uint) {
	return "session", e.SessionID, e.ActorID
}

type CreditsAllocated struct {
	ActorID  uint   `json:"actor_id"`
	ClientID uint   `json:"client_id"`
	Amount   int    `json:"amount"`
	Reason   string `json:"reason,omitempty"`
	Balance  int    `json:"balance"`
}

func (e CreditsAllocated) Subject() (string, uint, uint) {
	return "client", e.ClientID, e.ActorID
}
