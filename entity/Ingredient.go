package entity

import (
	"gorm.io/gorm"
)

// Ingredient carries optional nutrition values per 100g.
type Ingredient struct {
	gorm.Model
	Name          string   `gorm:"not null" json:"name"`
	Calories      *float64 `json:"calories"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
}

func (i Ingredient) DisplayName() string { return i.Name }
