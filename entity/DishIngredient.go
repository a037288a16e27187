package entity

import "time"

// DishIngredient links an ingredient to a dish. One row per (dish, ingredient).
type DishIngredient struct {
	DishID       uint    `gorm:"primaryKey;autoIncrement:false" json:"dishId"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false" json:"ingredientId"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
	Unit         string  `gorm:"not null" json:"unit"`

	Dish       Dish       `json:"-"`
	Ingredient Ingredient `json:"ingredient"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (di DishIngredient) DisplayName() string { return di.Ingredient.Name }
