package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DailyMenu puts a menu on a location's plan for one day.
type DailyMenu struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	LocationID uint           `gorm:"not null;uniqueIndex:idx_daily_menu_slot,priority:1" json:"locationId"`
	Date       datatypes.Date `gorm:"not null;uniqueIndex:idx_daily_menu_slot,priority:2" json:"date"`
	MenuID     uint           `gorm:"not null;uniqueIndex:idx_daily_menu_slot,priority:3;index" json:"menuId"`

	Location Location `json:"location"`
	Menu     Menu     `json:"menu"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d DailyMenu) DisplayName() string { return d.Menu.Dish.Name }

// Day formats the plan date as YYYY-MM-DD.
func (d DailyMenu) Day() string { return time.Time(d.Date).Format(DateLayout) }

const DateLayout = "2006-01-02"
