package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileHistory represents a record of profile changes
type ProfileHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Field     string    `gorm:"not null" json:"field"` // The field that was changed
	OldValue  string    `gorm:"type:text" json:"old_value"`
	NewValue  string    `gorm:"type:text" json:"new_value"`
	ChangedAt time.Time `gorm:"not null" json:"changed_at"`
	ChangedBy uuid.UUID `gorm:"type:varchar(36);not null" json:"changed_by"`
}

// TableName specifies the table name for ProfileHistory
func (ProfileHistory) TableName() string {
	return "profile_history"
}
