package dto

import (
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type SessionDTO struct {
	ID               uint      `json:"id"`
	ClientID         *uint     `json:"client_id"`
	TrainerID        uint      `json:"trainer_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	Status           string    `json:"status"`
	RecurringGroupID *string   `json:"recurring_group_id,omitempty"`
	AttendanceStatus string    `json:"attendance_status"`

	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	LateFeeApplied bool       `json:"late_fee_applied"`
	LateFeeAmount  string     `json:"late_fee_amount"`
	CreditRestored bool       `json:"credit_restored"`
}

func FromSession(s models.Session) SessionDTO {
	return SessionDTO{
		ID:               s.ID,
		ClientID:         s.ClientID,
		TrainerID:        s.TrainerID,
		StartTime:        s.StartTime.UTC(),
		EndTime:          s.EndTime.UTC(),
		DurationMinutes:  s.DurationMinutes,
		Status:           s.Status,
		RecurringGroupID: s.RecurringGroupID,
		AttendanceStatus: s.AttendanceStatus,
		CancelledAt:      s.CancelledAt,
		LateFeeApplied:   s.LateFeeApplied,
		LateFeeAmount:    s.LateFeeAmount.StringFixed(2),
		CreditRestored:   s.CreditRestored,
	}
}

func FromSessions(in []models.Session) []SessionDTO {
	out := make([]SessionDTO, 0, len(in))
	for _, s := range in {
		out = append(out, FromSession(s))
	}
	return out
}

type BookingDTO struct {
	GroupID    *string      `json:"group_id"`
	SessionIDs []uint       `json:"session_ids"`
	Sessions   []SessionDTO `json:"sessions"`
	Balance    int          `json:"balance"`
}
