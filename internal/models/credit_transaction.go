package models

import "time"

// CreditTransaction is the journal row written next to every balance
// change. Delta is negative for debits.
type CreditTransaction struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ClientID     uint    `gorm:"not null;index" json:"client_id"`
	Delta        int     `gorm:"not null" json:"delta"`
	BalanceAfter int     `gorm:"not null" json:"balance_after"`
	Reason       string  `gorm:"size:30;not null" json:"reason"`
	SessionID    *uint   `gorm:"index" json:"session_id"`
	GroupID      *string `gorm:"size:36" json:"group_id"`
	Note         string  `gorm:"size:255" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
