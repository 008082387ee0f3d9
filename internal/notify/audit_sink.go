package notify

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// AuditSink writes every event to the audit_logs table.
type AuditSink struct {
	db *gorm.DB
}

func NewAuditSink(db *gorm.DB) *AuditSink {
	return &AuditSink{db: db}
}

func (s *AuditSink) Name() string { return "audit" }

func (s *AuditSink) Deliver(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Payload != nil {
		if b, err := json.Marshal(ev.Payload); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Action:    ev.Type,
		Metadata:  metaJSON,
		CreatedAt: ev.OccurredAt,
	}

	if subj, ok := ev.Payload.(Subject); ok {
		entity, entityID, actorID := subj.Subject()
		row.Entity = entity
		if entityID != 0 {
			row.EntityID = &entityID
		}
		if actorID != 0 {
			row.ActorID = &actorID
		}
	}

	return s.db.WithContext(ctx).Create(&row).Error
}
