package repository

import (
	"context"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) FindAll(ctx context.Context) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.WithContext(ctx).
		Preload("Dish").
		Order("id ASC").
		Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*entity.Menu, error) {
	var menu entity.Menu
	err := r.DB.WithContext(ctx).
		Preload("Dish").
		First(&menu, id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) Create(ctx context.Context, menu *entity.Menu) error {
	return r.DB.WithContext(ctx).Omit("Dish", "Ratings", "DailyMenus").Create(menu).Error
}

// CreateBatch inserts all menus or none.
func (r *MenuRepository) CreateBatch(ctx context.Context, menus []entity.Menu) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range menus {
			if err := tx.Omit("Dish", "Ratings", "DailyMenus").Create(&menus[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MenuRepository) Update(ctx context.Context, menu *entity.Menu) error {
	return r.DB.WithContext(ctx).Model(&entity.Menu{}).
		Where("id = ?", menu.ID).
		Updates(map[string]any{
			"dish_id":   menu.DishID,
			"price":     menu.Price,
			"image_url": menu.ImageURL,
			"is_vegan":  menu.IsVegan,
			"has_salad": menu.HasSalad,
		}).Error
}

func (r *MenuRepository) UpdateImage(ctx context.Context, id uint, url string) error {
	return r.DB.WithContext(ctx).Model(&entity.Menu{}).
		Where("id = ?", id).
		Update("image_url", url).Error
}

// Delete removes the menu and takes it off every daily plan.
func (r *MenuRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&entity.DailyMenu{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Menu{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Menu{}).Count(&n).Error
	return n, err
}
