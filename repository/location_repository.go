package repository

import (
	"context"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/gorm"
)

type LocationRepository struct {
	DB *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

func (r *LocationRepository) FindAll(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) FindByID(ctx context.Context, id uint) (*entity.Location, error) {
	var location entity.Location
	if err := r.DB.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) Create(ctx context.Context, location *entity.Location) error {
	return r.DB.WithContext(ctx).Create(location).Error
}
