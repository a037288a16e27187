package repository

import (
	"context"
	"fmt"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/gorm"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

func (r *DishRepository) FindAll(ctx context.Context) ([]entity.Dish, error) {
	var dishes []entity.Dish
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&dishes).Error
	return dishes, err
}

func (r *DishRepository) FindByID(ctx context.Context, id uint) (*entity.Dish, error) {
	var dish entity.Dish
	if err := r.DB.WithContext(ctx).First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *DishRepository) Create(ctx context.Context, dish *entity.Dish) error {
	return r.DB.WithContext(ctx).Omit("Ingredients", "Menus").Create(dish).Error
}

func (r *DishRepository) Update(ctx context.Context, dish *entity.Dish) error {
	return r.DB.WithContext(ctx).Model(dish).
		Select("name", "description").
		Updates(map[string]any{"name": dish.Name, "description": dish.Description}).Error
}

// Delete drops the dish together with its ingredient links. It fails with
// ErrInUse while menus still reference the dish.
func (r *DishRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menus int64
		if err := tx.Model(&entity.Menu{}).Where("dish_id = ?", id).Count(&menus).Error; err != nil {
			return err
		}
		if menus > 0 {
			return fmt.Errorf("%w: %d menu(s) use this dish", ErrInUse, menus)
		}
		if err := tx.Where("dish_id = ?", id).Delete(&entity.DishIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Dish{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *DishRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Dish{}).Count(&n).Error
	return n, err
}
