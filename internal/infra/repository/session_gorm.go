package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

const defaultDuration = 60 * time.Minute

func occupyingStatuses() []string {
	out := make([]string, 0, len(domain.OccupyingStatuses))
	for _, s := range domain.OccupyingStatuses {
		out = append(out, string(s))
	}
	return out
}

// --------------------------------------------------
// Session (create / conflicts)
// --------------------------------------------------

func (r *GormRepository) CreateSession(
	ctx context.Context,
	in domain.NewSession,
) (*models.Session, error) {
	if in.ClientID == 0 || in.TrainerID == 0 {
		return nil, fmt.Errorf("%w: client and trainer are required", domain.ErrInvalidInput)
	}

	duration := in.Duration
	if duration <= 0 {
		duration = defaultDuration
	}
	cost := in.CreditCost
	if cost <= 0 {
		cost = 1
	}
	start := in.Start.UTC()

	var created *models.Session
	err := r.atomic(ctx, func(ctx context.Context, tx *GormRepository) error {
		conflicts, err := tx.FindConflicts(ctx, in.TrainerID, []time.Time{start}, duration)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return slotConflict(in.TrainerID, start)
		}

		clientID := in.ClientID
		s := models.Session{
			StartTime:        start,
			EndTime:          start.Add(duration),
			DurationMinutes:  int(duration / time.Minute),
			ClientID:         &clientID,
			TrainerID:        in.TrainerID,
			Status:           string(domain.InitialStatus()),
			RecurringGroupID: in.GroupID,
			CreditCost:       cost,
			AttendanceStatus: string(domain.AttendancePending),
			LateFeeAmount:    decimal.Zero,
		}

		if err := tx.db.WithContext(ctx).Create(&s).Error; err != nil {
			if isDuplicateKey(err) {
				return slotConflict(in.TrainerID, start)
			}
			return translateError(err)
		}

		created = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindConflicts checks every start independently and reports all of them.
func (r *GormRepository) FindConflicts(
	ctx context.Context,
	trainerID uint,
	starts []time.Time,
	duration time.Duration,
) ([]time.Time, error) {
	return r.findConflicts(ctx, trainerID, starts, duration, 0)
}

// findConflicts ignores the session excludeID, so a session being moved
// does not collide with its own slot.
func (r *GormRepository) findConflicts(
	ctx context.Context,
	trainerID uint,
	starts []time.Time,
	duration time.Duration,
	excludeID uint,
) ([]time.Time, error) {
	if duration <= 0 {
		duration = defaultDuration
	}

	statuses := occupyingStatuses()
	var conflicts []time.Time

	for _, start := range starts {
		start = start.UTC()
		end := start.Add(duration)

		// COUNT cannot be combined with FOR UPDATE on postgres
		q := r.db.WithContext(ctx).
			Select("id", "start_time").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"trainer_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				trainerID,
				statuses,
				end,
				start,
			)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}

		var hits []models.Session
		if err := q.Limit(1).Find(&hits).Error; err != nil {
			return nil, translateError(err)
		}

		if len(hits) > 0 {
			conflicts = append(conflicts, start)
		}
	}

	return conflicts, nil
}

// --------------------------------------------------
// Session (read)
// --------------------------------------------------

func (r *GormRepository) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *GormRepository) ListGroup(ctx context.Context, groupID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("recurring_group_id = ?", groupID).
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, translateError(err)
	}
	return sessions, nil
}

func (r *GormRepository) ListClientGroups(ctx context.Context, clientID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND recurring_group_id IS NOT NULL", clientID).
		Order("recurring_group_id ASC").
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, translateError(err)
	}
	return sessions, nil
}

func (r *GormRepository) AttendanceCounts(
	ctx context.Context,
	f domain.AttendanceFilter,
) (domain.AttendanceCounts, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("status IN ?", []string{string(domain.StatusCompleted), string(domain.StatusNoShow)}).
		Where("attendance_status IN ?", []string{
			string(domain.AttendancePresent),
			string(domain.AttendanceLate),
			string(domain.AttendanceNoShow),
		})

	if f.TrainerID != nil {
		q = q.Where("trainer_id = ?", *f.TrainerID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("start_time < ?", f.To.UTC())
	}

	var rows []struct {
		AttendanceStatus string
		Total            int
	}
	if err := q.
		Select("attendance_status, COUNT(*) AS total").
		Group("attendance_status").
		Scan(&rows).Error; err != nil {
		return domain.AttendanceCounts{}, translateError(err)
	}

	var out domain.AttendanceCounts
	for _, row := range rows {
		switch domain.AttendanceStatus(row.AttendanceStatus) {
		case domain.AttendancePresent:
			out.Present = row.Total
		case domain.AttendanceLate:
			out.Late = row.Total
		case domain.AttendanceNoShow:
			out.NoShow = row.Total
		}
	}
	return out, nil
}

// --------------------------------------------------
// Session (status changes)
// --------------------------------------------------

func (r *GormRepository) TransitionStatus(
	ctx context.Context,
	id uint,
	from, to domain.Status,
	t domain.Transition,
) (*models.Session, error) {
	if err := domain.CanTransition(from, to); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(transitionColumns(to, t))
	if res.Error != nil {
		return nil, translateError(res.Error)
	}

	if res.RowsAffected == 0 {
		if _, err := r.GetSession(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: session %d is no longer %s", domain.ErrConflictingState, id, from)
	}

	return r.GetSession(ctx, id)
}

func (r *GormRepository) RescheduleSession(
	ctx context.Context,
	id uint,
	from domain.Status,
	oldStart, newStart time.Time,
) (*models.Session, error) {
	if !from.IsReschedulable() {
		return nil, fmt.Errorf("%w: a %s session cannot be moved", domain.ErrInvalidTransition, from)
	}

	var moved *models.Session
	err := r.atomic(ctx, func(ctx context.Context, tx *GormRepository) error {
		current, err := tx.GetSession(ctx, id)
		if err != nil {
			return err
		}

		duration := time.Duration(current.DurationMinutes) * time.Minute
		if duration <= 0 {
			duration = defaultDuration
		}
		start := newStart.UTC()

		conflicts, err := tx.findConflicts(ctx, current.TrainerID, []time.Time{start}, duration, id)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return slotConflict(current.TrainerID, start)
		}

		res := tx.db.WithContext(ctx).
			Model(&models.Session{}).
			Where("id = ? AND status = ? AND start_time = ?", id, string(from), oldStart.UTC()).
			Updates(map[string]any{
				"start_time": start,
				"end_time":   start.Add(duration),
			})
		if res.Error != nil {
			if isDuplicateKey(res.Error) {
				return slotConflict(current.TrainerID, start)
			}
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: session %d is no longer %s at %s",
				domain.ErrConflictingState, id, from, oldStart.UTC().Format(time.RFC3339))
		}

		moved, err = tx.GetSession(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (r *GormRepository) MarkNoShowCreditRestored(
	ctx context.Context,
	id uint,
	by uint,
	reason string,
	at time.Time,
) (*models.Session, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND status = ? AND credit_restored = ?", id, string(domain.StatusNoShow), false).
		Updates(map[string]any{
			"credit_restored":    true,
			"credit_restored_by": by,
			"credit_restored_at": at.UTC(),
			"waiver_reason":      reason,
		})
	if res.Error != nil {
		return nil, translateError(res.Error)
	}

	if res.RowsAffected == 0 {
		s, err := r.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		if domain.Status(s.Status) != domain.StatusNoShow {
			return nil, fmt.Errorf("%w: session %d is %s, not no_show", domain.ErrInvalidTransition, id, s.Status)
		}
		return nil, fmt.Errorf("%w: credit for session %d already restored", domain.ErrAlreadyFinalized, id)
	}

	return r.GetSession(ctx, id)
}

func transitionColumns(to domain.Status, t domain.Transition) map[string]any {
	at := t.At.UTC()
	cols := map[string]any{"status": string(to)}

	switch to {
	case domain.StatusConfirmed:
		cols["confirmed_at"] = at
		if t.ConfirmedBy != nil {
			cols["confirmed_by"] = *t.ConfirmedBy
		}
	case domain.StatusCancelled:
		cols["cancelled_at"] = at
	case domain.StatusCompleted:
		cols["completed_at"] = at
	}

	if t.CancelledBy != nil {
		cols["cancelled_by"] = *t.CancelledBy
	}
	if t.CancellationReason != nil {
		cols["cancellation_reason"] = *t.CancellationReason
	}
	if t.LateFeeApplied != nil {
		cols["late_fee_applied"] = *t.LateFeeApplied
	}
	if t.LateFeeAmount != nil {
		cols["late_fee_amount"] = *t.LateFeeAmount
	}
	if t.CreditRestored != nil {
		cols["credit_restored"] = *t.CreditRestored
		if *t.CreditRestored {
			cols["credit_restored_at"] = at
			if t.CancelledBy != nil {
				cols["credit_restored_by"] = *t.CancelledBy
			}
		}
	}

	if t.AttendanceStatus != nil {
		cols["attendance_status"] = string(*t.AttendanceStatus)
		cols["attendance_recorded_at"] = at
		if t.AttendanceRecordedBy != nil {
			cols["attendance_recorded_by"] = *t.AttendanceRecordedBy
		}
	}
	if t.CheckInAt != nil {
		cols["check_in_at"] = t.CheckInAt.UTC()
	}
	if t.CheckOutAt != nil {
		cols["check_out_at"] = t.CheckOutAt.UTC()
	}
	if t.NoShowReason != nil {
		cols["no_show_reason"] = *t.NoShowReason
	}

	return cols
}
