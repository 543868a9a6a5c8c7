package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a pantry entry. ID is chosen by the client and is unique per user.
type Ingredient struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"-"`
	ID        string    `gorm:"size:128;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Quantity  string    `gorm:"size:64" json:"quantity"`
	Unit      string    `gorm:"size:64" json:"unit"`
	Category  string    `gorm:"size:64" json:"category,omitempty"`
	Image     string    `gorm:"size:512" json:"image,omitempty"`
	Calories  string    `gorm:"size:64" json:"calories,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
