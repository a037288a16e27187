package repository

import (
	"context"
	"errors"

	"github.com/dhbw-mensa/backend/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error) {
	var role entity.UserRole
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Take(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// EnsureRole writes the role row unless one exists. The primary key on user_id
// makes a concurrent second insert a no-op instead of a duplicate.
func (r *RoleRepository) EnsureRole(ctx context.Context, userID uuid.UUID, role entity.Role) (bool, error) {
	_, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserRole{UserID: userID, Role: role})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RoleRepository) SetPreferredLocation(ctx context.Context, userID uuid.UUID, locationID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.UserRole{}).
		Where("user_id = ?", userID).
		Update("preferred_location_id", locationID)
	return res.RowsAffected, res.Error
}
