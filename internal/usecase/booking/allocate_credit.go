package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
)

// MaxAllocation caps a single grant.
const MaxAllocation = 1000

type AllocateCreditInput struct {
	ClientID uint
	Sessions int
	Reason   string
}

// AllocateCredit lets an admin add session credits to a client's balance,
// e.g. after an offline purchase.
type AllocateCredit struct {
	ledger domain.Ledger
	events domain.EventEmitter
	opts   options
}

func NewAllocateCredit(ledger domain.Ledger, events domain.EventEmitter, opts ...Option) *AllocateCredit {
	return &AllocateCredit{ledger: ledger, events: events, opts: buildOptions(opts)}
}

// Execute returns the balance after the grant.
func (uc *AllocateCredit) Execute(ctx context.Context, by actor.Actor, in AllocateCreditInput) (int, error) {
	if !by.IsAdmin() {
		return 0, fmt.Errorf("%w: only admins allocate credits", domain.ErrUnauthorized)
	}
	if in.ClientID == 0 {
		return 0, fmt.Errorf("%w: client id is required", domain.ErrInvalidInput)
	}
	if in.Sessions < 1 || in.Sessions > MaxAllocation {
		return 0, fmt.Errorf("%w: sessions must be between 1 and %d", domain.ErrInvalidInput, MaxAllocation)
	}
	reason := strings.TrimSpace(in.Reason)

	balance, err := uc.ledger.Credit(ctx, in.ClientID, in.Sessions, domain.LedgerEntry{
		Reason: domain.ReasonAdminAllocation,
		Note:   reason,
	})
	if err != nil {
		return 0, err
	}

	uc.opts.metrics.RecordCreditsAllocated(in.Sessions)
	uc.opts.logger.InfoContext(ctx, "credits allocated",
		"client_id", in.ClientID,
		"actor_id", by.ID,
		"sessions", in.Sessions,
		"balance", balance,
	)
	uc.events.Emit(domain.EventCreditsAllocated, domain.CreditsAllocated{
		ActorID:  by.ID,
		ClientID: in.ClientID,
		Amount:   in.Sessions,
		Reason:   reason,
		Balance:  balance,
	})

	return balance, nil
}
