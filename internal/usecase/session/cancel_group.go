package session

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type GroupCancelResult struct {
	GroupID         string           `json:"group_id"`
	Cancelled       []models.Session `json:"cancelled"`
	Skipped         []uint           `json:"skipped"`
	CreditsRestored int              `json:"credits_restored"`
	LateFeeTotal    string           `json:"late_fee_total"`
	// Balance is set when at least one credit was restored.
	Balance *int `json:"balance,omitempty"`
}

// CancelGroup cancels every future, still open session of a recurring
// group in one transaction. Past and finalized members are left alone; a
// group with nothing left to cancel is reported as not found.
type CancelGroup struct {
	repo   domain.Repository
	policy *policy.Engine
	events domain.EventEmitter
	opts   options
}

func NewCancelGroup(
	repo domain.Repository,
	engine *policy.Engine,
	events domain.EventEmitter,
	opts ...Option,
) *CancelGroup {
	return &CancelGroup{
		repo:   repo,
		policy: engine,
		events: events,
		opts:   buildOptions(opts),
	}
}

func (uc *CancelGroup) Execute(
	ctx context.Context,
	groupID string,
	by actor.Actor,
	in CancelInput,
) (*GroupCancelResult, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: group id is required", domain.ErrInvalidInput)
	}

	members, err := uc.repo.ListGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: recurring group %s", domain.ErrNotFound, groupID)
	}
	// members share client and trainer
	if !domain.IsParticipant(&members[0], by) {
		return nil, domain.ErrUnauthorized
	}

	now := uc.opts.now()
	res := &GroupCancelResult{GroupID: groupID}
	var outcomes []*CancelResult

	err = uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		members, err := tx.ListGroup(ctx, groupID)
		if err != nil {
			return err
		}

		res.Cancelled = make([]models.Session, 0, len(members))
		res.Skipped = []uint{}

		for i := range members {
			m := &members[i]
			status := domain.Status(m.Status)
			if !m.StartTime.After(now) || !status.IsCancellable() {
				res.Skipped = append(res.Skipped, m.ID)
				continue
			}

			out, err := cancelInTx(ctx, tx, uc.policy, m, by, in, now)
			if err != nil {
				return err
			}

			outcomes = append(outcomes, out)
			res.Cancelled = append(res.Cancelled, *out.Session)
			if out.CreditRestored {
				res.CreditsRestored += m.CreditCost
			}
			if out.Balance != nil {
				res.Balance = out.Balance
			}
		}

		if len(res.Cancelled) == 0 {
			return fmt.Errorf("%w: no cancellable sessions in recurring group %s", domain.ErrNotFound, groupID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, out := range outcomes {
		if out.LateFeeApplied {
			total = total.Add(out.FeeAmount)
		}
		uc.opts.metrics.RecordCancellation(out.IsLate, out.CreditRestored)
	}
	res.LateFeeTotal = total.StringFixed(2)

	ids := make([]uint, 0, len(res.Cancelled))
	for _, s := range res.Cancelled {
		ids = append(ids, s.ID)
	}

	uc.opts.logger.InfoContext(ctx, "recurring group cancelled",
		"group_id", groupID,
		"actor_id", by.ID,
		"cancelled", len(ids),
		"skipped", len(res.Skipped),
	)
	uc.events.Emit(domain.EventGroupCancelled, domain.GroupCancelled{
		ActorID:         by.ID,
		GroupID:         groupID,
		SessionIDs:      ids,
		CreditsRestored: res.CreditsRestored,
	})

	return res, nil
}
