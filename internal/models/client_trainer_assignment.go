package models

import "time"

type ClientTrainerAssignment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ClientID  uint `gorm:"not null;index:idx_assignment_pair" json:"client_id"`
	TrainerID uint `gorm:"not null;index:idx_assignment_pair" json:"trainer_id"`
	Active    bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
