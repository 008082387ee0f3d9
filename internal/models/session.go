package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is one booked training slot. Status, attendance and cancellation
// columns are only written through the session store's conditional updates.
type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartTime       time.Time `gorm:"not null;index" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`

	ClientID  *uint `gorm:"index" json:"client_id"`
	TrainerID uint  `gorm:"not null;index" json:"trainer_id"`

	Status           string  `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	RecurringGroupID *string `gorm:"size:36;index" json:"recurring_group_id"`
	CreditCost       int     `gorm:"not null;default:1" json:"credit_cost"`

	ConfirmedBy *uint      `json:"confirmed_by"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// attendance
	AttendanceStatus     string     `gorm:"size:20;not null;default:'pending'" json:"attendance_status"`
	CheckInAt            *time.Time `json:"check_in_at"`
	CheckOutAt           *time.Time `json:"check_out_at"`
	AttendanceRecordedBy *uint      `json:"attendance_recorded_by"`
	AttendanceRecordedAt *time.Time `json:"attendance_recorded_at"`
	NoShowReason         string     `gorm:"size:255" json:"no_show_reason,omitempty"`

	// cancellation
	CancellationReason string          `gorm:"size:255" json:"cancellation_reason,omitempty"`
	CancelledBy        *uint           `json:"cancelled_by"`
	CancelledAt        *time.Time      `json:"cancelled_at"`
	LateFeeApplied     bool            `gorm:"not null;default:false" json:"late_fee_applied"`
	LateFeeAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"late_fee_amount"`

	CreditRestored   bool       `gorm:"not null;default:false" json:"credit_restored"`
	CreditRestoredBy *uint      `json:"credit_restored_by"`
	CreditRestoredAt *time.Time `json:"credit_restored_at"`
	WaiverReason     string     `gorm:"size:255" json:"waiver_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
