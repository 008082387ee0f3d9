package models

import "time"

// Client holds the purchased-but-unused session balance. The balance is
// only mutated by the credit ledger.
type Client struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	AvailableSessions int `gorm:"not null;default:0;check:chk_clients_available_sessions,available_sessions >= 0" json:"available_sessions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
