package booking

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
)

type GetBalance struct {
	ledger      domain.Ledger
	assignments domain.AssignmentChecker
}

func NewGetBalance(ledger domain.Ledger, assignments domain.AssignmentChecker) *GetBalance {
	return &GetBalance{ledger: ledger, assignments: assignments}
}

// Execute: a client reads their own balance, a trainer the balance of an
// assigned client, an admin any balance.
func (uc *GetBalance) Execute(ctx context.Context, by actor.Actor, clientID uint) (int, error) {
	switch by.Role {
	case actor.RoleAdmin:
	case actor.RoleClient:
		if by.ID != clientID {
			return 0, fmt.Errorf("%w: not your balance", domain.ErrUnauthorized)
		}
	case actor.RoleTrainer:
		ok, err := uc.assignments.IsActiveAssignment(ctx, clientID, by.ID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: client %d is not assigned to you", domain.ErrUnauthorized, clientID)
		}
	default:
		return 0, domain.ErrUnauthorized
	}

	return uc.ledger.Balance(ctx, clientID)
}
