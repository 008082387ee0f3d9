package session

//go:generate mockgen -destination=./mock/collaborators_mock.go -package=mock -source=collaborators.go

import "context"

// AssignmentChecker answers whether a client is currently assigned to a
// trainer. Owned by the client-management side of the platform.
type AssignmentChecker interface {
	IsActiveAssignment(ctx context.Context, clientID, trainerID uint) (bool, error)
}

// EventEmitter is the notification gateway. Emit must not block and its
// failures are never reported back.
type EventEmitter interface {
	Emit(eventType string, payload any)
}
