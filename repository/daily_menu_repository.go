package repository

import (
	"context"
	"time"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DailyMenuRepository struct {
	DB *gorm.DB
}

func NewDailyMenuRepository(db *gorm.DB) *DailyMenuRepository {
	return &DailyMenuRepository{DB: db}
}

// Day truncates t to a UTC date value.
func Day(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (r *DailyMenuRepository) FindAll(ctx context.Context) ([]entity.DailyMenu, error) {
	var rows []entity.DailyMenu
	err := r.DB.WithContext(ctx).
		Preload("Location").
		Preload("Menu.Dish").
		Order("date DESC").Order("location_id ASC").
		Find(&rows).Error
	return rows, err
}

// FindForHome loads one location's plan for a day with menu, dish and all ratings.
func (r *DailyMenuRepository) FindForHome(ctx context.Context, locationID uint, day time.Time) ([]entity.DailyMenu, error) {
	var rows []entity.DailyMenu
	err := r.DB.WithContext(ctx).
		Preload("Menu.Dish").
		Preload("Menu.Ratings").
		Where("location_id = ? AND date = ?", locationID, Day(day)).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// FindByMenu lists every plan slot that serves the menu.
func (r *DailyMenuRepository) FindByMenu(ctx context.Context, menuID uint) ([]entity.DailyMenu, error) {
	var rows []entity.DailyMenu
	err := r.DB.WithContext(ctx).Where("menu_id = ?", menuID).Find(&rows).Error
	return rows, err
}

func (r *DailyMenuRepository) FindByID(ctx context.Context, id uint) (*entity.DailyMenu, error) {
	var row entity.DailyMenu
	err := r.DB.WithContext(ctx).
		Preload("Location").
		Preload("Menu.Dish").
		First(&row, id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *DailyMenuRepository) Create(ctx context.Context, row *entity.DailyMenu) error {
	return r.DB.WithContext(ctx).Omit("Location", "Menu").Create(row).Error
}

func (r *DailyMenuRepository) Update(ctx context.Context, row *entity.DailyMenu) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.DailyMenu{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"location_id": row.LocationID,
			"menu_id":     row.MenuID,
			"date":        row.Date,
		})
	return res.RowsAffected, res.Error
}

func (r *DailyMenuRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&entity.DailyMenu{}, id)
	return res.RowsAffected, res.Error
}

func (r *DailyMenuRepository) CountOn(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.DailyMenu{}).Where("date = ?", Day(day)).Count(&n).Error
	return n, err
}
