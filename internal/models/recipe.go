package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedRecipe is a recipe in a user's personal collection
type SavedRecipe struct {
	UserID       uuid.UUID  `gorm:"type:varchar(36);primaryKey;uniqueIndex:idx_saved_recipes_user_hash,priority:1" json:"-"`
	ID           uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Ingredients  StringList `gorm:"not null" json:"ingredients"`
	Instructions StringList `gorm:"not null" json:"instructions"`
	CookingTime  string     `gorm:"size:64" json:"cookingTime"`
	Difficulty   string     `gorm:"size:32" json:"difficulty"`
	Servings     int        `json:"servings"`
	Calories     string     `gorm:"size:64" json:"calories,omitempty"`
	ContentHash  string     `gorm:"size:64;not null;uniqueIndex:idx_saved_recipes_user_hash,priority:2" json:"-"`
	Shared       bool       `gorm:"not null" json:"shared"`
	SavedAt      time.Time  `gorm:"not null;index" json:"savedAt"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}

// SharedRecipe is a public copy of a saved recipe
type SharedRecipe struct {
	ID               uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Ingredients      StringList `gorm:"not null" json:"ingredients"`
	Instructions     StringList `gorm:"not null" json:"instructions"`
	CookingTime      string     `gorm:"size:64" json:"cookingTime"`
	Difficulty       string     `gorm:"size:32" json:"difficulty"`
	Servings         int        `json:"servings"`
	Calories         string     `gorm:"size:64" json:"calories,omitempty"`
	SharedBy         uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_shared_recipes_origin,priority:1" json:"sharedBy"`
	SharedByUsername string     `gorm:"size:50" json:"sharedByUsername"`
	OriginalRecipeID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_shared_recipes_origin,priority:2" json:"originalRecipeId"`
	SharedAt         time.Time  `gorm:"not null;index" json:"sharedAt"`
}

func (SharedRecipe) TableName() string {
	return "shared_recipes"
}
