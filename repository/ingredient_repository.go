package repository

import (
	"context"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/gorm"
)

type IngredientRepository struct {
	DB *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{DB: db}
}

func (r *IngredientRepository) FindAll(ctx context.Context) ([]entity.Ingredient, error) {
	var ingredients []entity.Ingredient
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *IngredientRepository) FindByID(ctx context.Context, id uint) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	if err := r.DB.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	return r.DB.WithContext(ctx).Create(ingredient).Error
}

func (r *IngredientRepository) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	return r.DB.WithContext(ctx).Model(ingredient).
		Select("name", "calories", "carbohydrates", "protein", "fat").
		Updates(ingredient).Error
}

// Delete also removes the ingredient from every dish it was assigned to.
func (r *IngredientRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&entity.DishIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Ingredient{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *IngredientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Ingredient{}).Count(&n).Error
	return n, err
}
