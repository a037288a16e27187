package entity

import (
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// hidden to keep list responses small
	Ingredients []DishIngredient `json:"-"`
	Menus       []Menu           `json:"-"`
}

func (d Dish) DisplayName() string { return d.Name }
