// Package policy holds the cancellation rules. Everything here is pure:
// callers pass the clock reading and the actor role in.
package policy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
)

// Config is the cancellation policy snapshot. It is copied by value into
// every evaluation so a config reload never changes an in-flight decision.
type Config struct {
	NoticeHours     int
	LateFee         decimal.Decimal
	RestoreOnTimely bool
	RestoreOnLate   bool
}

func DefaultConfig() Config {
	return Config{
		NoticeHours:     24,
		LateFee:         decimal.NewFromInt(25),
		RestoreOnTimely: true,
		RestoreOnLate:   false,
	}
}

func (c Config) NoticeThreshold() time.Duration {
	return time.Duration(c.NoticeHours) * time.Hour
}

// Outcome is what a cancellation would cost the client.
type Outcome struct {
	IsLate         bool
	FeeApplies     bool
	Fee            decimal.Decimal
	CreditRestored bool
	Waived         bool
}

// ===============================
// Rules
// ===============================

// IsLateCancellation reports whether fewer than threshold remain before
// sessionStart. A session starting exactly at now+threshold is on time.
func IsLateCancellation(now, sessionStart time.Time, threshold time.Duration) bool {
	return sessionStart.Sub(now) < threshold
}

// ComputeCancellationOutcome applies the fee/restoration table. Admins
// waive late fees and always restore the credit.
func ComputeCancellationOutcome(cfg Config, isLate bool, role actor.Role) Outcome {
	switch {
	case !isLate:
		return Outcome{
			Fee:            decimal.Zero,
			CreditRestored: cfg.RestoreOnTimely,
		}
	case role == actor.RoleAdmin:
		return Outcome{
			IsLate:         true,
			Fee:            decimal.Zero,
			CreditRestored: true,
			Waived:         true,
		}
	default:
		return Outcome{
			IsLate:         true,
			FeeApplies:     true,
			Fee:            cfg.LateFee,
			CreditRestored: cfg.RestoreOnLate,
		}
	}
}

// ===============================
// Engine
// ===============================

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Snapshot returns a copy of the configured policy.
func (e *Engine) Snapshot() Config {
	return e.cfg
}

func (e *Engine) Evaluate(now, sessionStart time.Time, role actor.Role) Outcome {
	cfg := e.Snapshot()
	late := IsLateCancellation(now, sessionStart, cfg.NoticeThreshold())
	return ComputeCancellationOutcome(cfg, late, role)
}

// IsLate applies the notice window to any change of a booked session.
func (e *Engine) IsLate(now, sessionStart time.Time) bool {
	return IsLateCancellation(now, sessionStart, e.cfg.NoticeThreshold())
}

// Summary renders the outcome for display next to a cancel button.
func Summary(cfg Config, o Outcome) string {
	switch {
	case o.Waived:
		return fmt.Sprintf(
			"This is a late cancellation (less than %d hours notice). The late fee is waived and the session credit will be restored.",
			cfg.NoticeHours,
		)
	case o.IsLate && o.CreditRestored:
		return fmt.Sprintf(
			"This is a late cancellation (less than %d hours notice). A late fee of %s applies. Your session credit will be restored.",
			cfg.NoticeHours, o.Fee.StringFixed(2),
		)
	case o.IsLate:
		return fmt.Sprintf(
			"This is a late cancellation (less than %d hours notice). A late fee of %s applies and your session credit will not be restored.",
			cfg.NoticeHours, o.Fee.StringFixed(2),
		)
	case o.CreditRestored:
		return "You may cancel this session without penalty. Your session credit will be restored."
	default:
		return "You may cancel this session without penalty. Your session credit will not be restored."
	}
}
