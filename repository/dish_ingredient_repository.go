package repository

import (
	"context"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/gorm"
)

type DishIngredientRepository struct {
	DB *gorm.DB
}

func NewDishIngredientRepository(db *gorm.DB) *DishIngredientRepository {
	return &DishIngredientRepository{DB: db}
}

// FindByDish loads the links of one dish with their ingredients.
func (r *DishIngredientRepository) FindByDish(ctx context.Context, dishID uint) ([]entity.DishIngredient, error) {
	var links []entity.DishIngredient
	err := r.DB.WithContext(ctx).
		Preload("Ingredient").
		Where("dish_id = ?", dishID).
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}

func (r *DishIngredientRepository) Find(ctx context.Context, dishID, ingredientID uint) (*entity.DishIngredient, error) {
	var link entity.DishIngredient
	err := r.DB.WithContext(ctx).
		Preload("Ingredient").
		Where("dish_id = ? AND ingredient_id = ?", dishID, ingredientID).
		Take(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *DishIngredientRepository) Create(ctx context.Context, link *entity.DishIngredient) error {
	return r.DB.WithContext(ctx).Omit("Dish", "Ingredient").Create(link).Error
}

func (r *DishIngredientRepository) Update(ctx context.Context, dishID, ingredientID uint, quantity float64, unit string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.DishIngredient{}).
		Where("dish_id = ? AND ingredient_id = ?", dishID, ingredientID).
		Updates(map[string]any{"quantity": quantity, "unit": unit})
	return res.RowsAffected, res.Error
}

func (r *DishIngredientRepository) Delete(ctx context.Context, dishID, ingredientID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("dish_id = ? AND ingredient_id = ?", dishID, ingredientID).
		Delete(&entity.DishIngredient{})
	return res.RowsAffected, res.Error
}
