package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// AssignmentGormRepository reads the client/trainer assignments kept by
// client management.
type AssignmentGormRepository struct {
	db *gorm.DB
}

func NewAssignmentGormRepository(db *gorm.DB) *AssignmentGormRepository {
	return &AssignmentGormRepository{db: db}
}

func (r *AssignmentGormRepository) IsActiveAssignment(
	ctx context.Context,
	clientID, trainerID uint,
) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientTrainerAssignment{}).
		Where("client_id = ? AND trainer_id = ? AND active = ?", clientID, trainerID, true).
		Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}
