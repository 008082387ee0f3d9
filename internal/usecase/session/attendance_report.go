package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
)

// ReportFilter bounds are calendar days: From counts from its own instant,
// To includes the whole day it falls on.
type ReportFilter struct {
	TrainerID *uint
	ClientID  *uint
	From      *time.Time
	To        *time.Time
}

type AttendanceReport struct {
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	NoShow         int     `json:"no_show"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendance_rate"`
	LateRate       float64 `json:"late_rate"`
	NoShowRate     float64 `json:"no_show_rate"`
}

// GetAttendanceReport scopes trainers to their own sessions and clients
// to their own bookings.
type GetAttendanceReport struct {
	repo domain.Store
}

func NewGetAttendanceReport(repo domain.Store) *GetAttendanceReport {
	return &GetAttendanceReport{repo: repo}
}

func (uc *GetAttendanceReport) Execute(
	ctx context.Context,
	by actor.Actor,
	f ReportFilter,
) (*AttendanceReport, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("%w: from must not be after to", domain.ErrInvalidInput)
	}

	switch by.Role {
	case actor.RoleAdmin:
	case actor.RoleTrainer:
		if f.TrainerID != nil && *f.TrainerID != by.ID {
			return nil, domain.ErrUnauthorized
		}
		f.TrainerID = &by.ID
	case actor.RoleClient:
		if f.ClientID != nil && *f.ClientID != by.ID {
			return nil, domain.ErrUnauthorized
		}
		f.ClientID = &by.ID
	default:
		return nil, domain.ErrUnauthorized
	}

	counts, err := uc.repo.AttendanceCounts(ctx, domain.AttendanceFilter{
		TrainerID: f.TrainerID,
		ClientID:  f.ClientID,
		From:      f.From,
		To:        dayAfter(f.To),
	})
	if err != nil {
		return nil, err
	}

	total := counts.Total()
	return &AttendanceReport{
		Present:        counts.Present,
		Late:           counts.Late,
		NoShow:         counts.NoShow,
		Total:          total,
		AttendanceRate: rate(counts.Present+counts.Late, total),
		LateRate:       rate(counts.Late, total),
		NoShowRate:     rate(counts.NoShow, total),
	}, nil
}

// dayAfter turns an inclusive last day into the exclusive bound the store
// expects, in the day's own location.
func dayAfter(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
	return &next
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 1000
}
