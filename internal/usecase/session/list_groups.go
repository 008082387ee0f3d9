package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

type GroupSummary struct {
	GroupID    string    `json:"group_id"`
	TrainerID  uint      `json:"trainer_id"`
	FirstStart time.Time `json:"first_start"`
	LastStart  time.Time `json:"last_start"`

	// NextStart is the earliest upcoming member, if any.
	NextStart *time.Time `json:"next_start,omitempty"`

	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"no_show"`
}

// ListRecurringGroups summarizes a client's recurring series. Trainers
// only see the series they run.
type ListRecurringGroups struct {
	repo domain.Store
	opts options
}

func NewListRecurringGroups(repo domain.Store, opts ...Option) *ListRecurringGroups {
	return &ListRecurringGroups{repo: repo, opts: buildOptions(opts)}
}

// Execute lists the groups of clientID; a client may pass 0 for itself.
func (uc *ListRecurringGroups) Execute(
	ctx context.Context,
	by actor.Actor,
	clientID uint,
) ([]GroupSummary, error) {
	switch by.Role {
	case actor.RoleClient:
		if clientID == 0 {
			clientID = by.ID
		}
		if clientID != by.ID {
			return nil, fmt.Errorf("%w: not your sessions", domain.ErrUnauthorized)
		}
	case actor.RoleAdmin, actor.RoleTrainer:
		if clientID == 0 {
			return nil, fmt.Errorf("%w: client_id is required", domain.ErrInvalidInput)
		}
	default:
		return nil, domain.ErrUnauthorized
	}

	sessions, err := uc.repo.ListClientGroups(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := uc.opts.now()
	groups := make([]GroupSummary, 0)
	index := make(map[string]int)

	for i := range sessions {
		s := &sessions[i]
		if s.RecurringGroupID == nil {
			continue
		}
		if by.Role == actor.RoleTrainer && s.TrainerID != by.ID {
			continue
		}

		pos, ok := index[*s.RecurringGroupID]
		if !ok {
			pos = len(groups)
			index[*s.RecurringGroupID] = pos
			groups = append(groups, GroupSummary{
				GroupID:    *s.RecurringGroupID,
				TrainerID:  s.TrainerID,
				FirstStart: s.StartTime.UTC(),
			})
		}
		summarize(&groups[pos], s, now)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].FirstStart.Before(groups[j].FirstStart)
	})
	return groups, nil
}

func summarize(g *GroupSummary, s *models.Session, now time.Time) {
	start := s.StartTime.UTC()
	g.Total++
	if start.Before(g.FirstStart) {
		g.FirstStart = start
	}
	if start.After(g.LastStart) {
		g.LastStart = start
	}

	switch status := domain.Status(s.Status); {
	case status == domain.StatusCompleted:
		g.Completed++
	case status == domain.StatusCancelled:
		g.Cancelled++
	case status == domain.StatusNoShow:
		g.NoShow++
	case start.After(now):
		g.Upcoming++
		if g.NextStart == nil || start.Before(*g.NextStart) {
			g.NextStart = &start
		}
	}
}
