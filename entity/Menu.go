package entity

import (
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	DishID   uint    `gorm:"not null;index" json:"dishId"`
	Dish     Dish    `json:"dish"`
	Price    float64 `gorm:"not null;default:0" json:"price"`
	ImageURL string  `json:"imageUrl"`
	IsVegan  bool    `gorm:"not null;default:false" json:"isVegan"`
	HasSalad bool    `gorm:"not null;default:false" json:"hasSalad"`

	// preload only for the home listing
	Ratings    []Rating    `json:"-"`
	DailyMenus []DailyMenu `json:"-"`
}

func (m Menu) DisplayName() string { return m.Dish.Name }
