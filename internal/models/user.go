package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

// UserProfile is the single profile owned by an identity. Version increases on every update.
type UserProfile struct {
	UserID            uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Email             string     `gorm:"size:255;not null" json:"email"`
	Username          string     `gorm:"size:50;not null" json:"username"`
	DietaryLifestyle  string     `gorm:"size:100" json:"dietary_lifestyle"`
	Allergies         StringList `gorm:"not null" json:"allergies"`
	ReligiousPractice string     `gorm:"size:100" json:"religious_practice"`
	CalorieGoal       string     `gorm:"size:50" json:"calorie_goal"`
	Version           int64      `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
