package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's star value for a menu. (user_id, menu_id) is unique.
type Rating struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_menu,priority:1" json:"userId"`
	MenuID  uint      `gorm:"not null;uniqueIndex:idx_rating_user_menu,priority:2;index" json:"menuId"`
	Stars   int       `gorm:"not null;check:stars >= 1 AND stars <= 5" json:"stars"`
	Comment string    `json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
}
