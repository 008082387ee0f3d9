package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID *uint  `gorm:"index" json:"actor_id"`
	Action  string `gorm:"size:50;not null;index" json:"action"`

	// EntityID is nil for recurring group events; the group id is in Metadata.
	Entity   string `gorm:"size:50;index:idx_audit_logs_entity" json:"entity"`
	EntityID *uint  `gorm:"index:idx_audit_logs_entity" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
