package testhelpers

import (
	"testing"
	"time"

	"github.com/culina/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestUser inserts an identity and its profile and returns the user id
func CreateTestUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New(),
		Email:        username + "@example.com",
		PasswordHash: "hashed_password",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	profile := models.UserProfile{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  username,
		Allergies: models.StringList{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user.ID
}
