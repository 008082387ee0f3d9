// Package actor describes the already-authenticated caller of every
// booking and cancellation operation.
package actor

import "strings"

type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

type Actor struct {
	ID   uint
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ParseRole accepts the role claim as issued by the auth service.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, true
	case RoleTrainer:
		return RoleTrainer, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
