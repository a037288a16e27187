package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the side-effect row written at registration (one per user).
type UserRole struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Role   Role      `gorm:"not null" json:"role"`

	PreferredLocationID *uint     `json:"preferredLocationId"`
	PreferredLocation   *Location `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
