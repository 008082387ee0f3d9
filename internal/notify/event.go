// Package notify delivers booking events to audit, pub/sub and log sinks
// without ever blocking the caller.
package notify

import (
	"context"
	"time"
)

type Event struct {
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink receives events from the dispatcher worker. Errors are logged and
// dropped.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

// Subject is implemented by payloads that name the record they describe.
type Subject interface {
	Subject() (entity string, entityID uint, actorID uint)
}
