package entity

import (
	"gorm.io/gorm"
)

// Location is a Mensa site.
type Location struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	DailyMenus []DailyMenu `json:"-"`
}

func (l Location) DisplayName() string { return l.Name }
