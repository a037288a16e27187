package repository

import (
	"context"

	"github.com/dhbw-mensa/backend/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Exists is the read half of check-then-insert. It is only a fast path:
// the unique index on (user_id, menu_id) is what actually rejects duplicates.
func (r *RatingRepository) Exists(ctx context.Context, userID uuid.UUID, menuID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&entity.Rating{}).
		Where("user_id = ? AND menu_id = ?", userID, menuID).
		Count(&count).Error
	return count > 0, err
}

func (r *RatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	return r.DB.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) FindByMenu(ctx context.Context, menuID uint) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := r.DB.WithContext(ctx).Where("menu_id = ?", menuID).Order("created_at DESC").Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepository) CountByUserAndMenu(ctx context.Context, userID uuid.UUID, menuID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&entity.Rating{}).
		Where("user_id = ? AND menu_id = ?", userID, menuID).
		Count(&count).Error
	return count, err
}
