package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type CancellationPreview struct {
	SessionID            uint            `json:"session_id"`
	Status               domain.Status   `json:"status"`
	Allowed              bool            `json:"allowed"`
	IsLate               bool            `json:"is_late"`
	FeeApplies           bool            `json:"fee_applies"`
	FeeAmount            decimal.Decimal `json:"fee_amount"`
	CreditRestored       bool            `json:"credit_restored"`
	HoursUntilStart      float64         `json:"hours_until_start"`
	RequiredNoticeHours  int             `json:"required_notice_hours"`
	ConfirmationRequired bool            `json:"confirmation_required"`
	Summary              string          `json:"summary"`
}

// EvaluateCancellation shows what a cancellation would cost without
// changing anything.
type EvaluateCancellation struct {
	repo   domain.Store
	policy *policy.Engine
	opts   options
}

func NewEvaluateCancellation(repo domain.Store, engine *policy.Engine, opts ...Option) *EvaluateCancellation {
	return &EvaluateCancellation{repo: repo, policy: engine, opts: buildOptions(opts)}
}

func (uc *EvaluateCancellation) Execute(
	ctx context.Context,
	sessionID uint,
	by actor.Actor,
) (*CancellationPreview, error) {
	s, err := loadForParticipant(ctx, uc.repo, sessionID, by)
	if err != nil {
		return nil, err
	}

	p := buildPreview(uc.policy, s, by, uc.opts.now())
	return &p, nil
}

func buildPreview(engine *policy.Engine, s *models.Session, by actor.Actor, now time.Time) CancellationPreview {
	cfg := engine.Snapshot()
	status := domain.Status(s.Status)
	out := engine.Evaluate(now, s.StartTime, by.Role)

	p := CancellationPreview{
		SessionID:           s.ID,
		Status:              status,
		Allowed:             status.IsCancellable(),
		RequiredNoticeHours: cfg.NoticeHours,
		HoursUntilStart:     hoursUntil(now, s.StartTime),
	}

	if !p.Allowed {
		p.FeeAmount = decimal.Zero
		p.Summary = fmt.Sprintf("This session is %s and can no longer be cancelled.", status)
		return p
	}

	p.IsLate = out.IsLate
	p.FeeApplies = out.FeeApplies
	p.FeeAmount = out.Fee
	p.CreditRestored = out.CreditRestored
	p.ConfirmationRequired = out.IsLate && out.FeeApplies
	p.Summary = policy.Summary(cfg, out)
	return p
}

// hoursUntil rounds to one decimal and never goes below zero.
func hoursUntil(now, start time.Time) float64 {
	h := start.Sub(now).Hours()
	if h < 0 {
		return 0
	}
	return math.Round(h*10) / 10
}
