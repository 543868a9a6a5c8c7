package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		db:     db,
		logger: logger,
	}
}

// GetUserProfile retrieves a user's profile
func (s *ProfileService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, storeError("get profile", err)
	}
	return &profile, nil
}

// CreateUserProfile writes the profile for userID. Writing it again overwrites the profile fields.
func (s *ProfileService) CreateUserProfile(ctx context.Context, userID uuid.UUID, req *types.CreateProfileRequest) (*models.UserProfile, error) {
	var profile *models.UserProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		profile, err = createProfile(tx, userID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// createProfile upserts a profile inside tx so registration can share the identity transaction
func createProfile(tx *gorm.DB, userID uuid.UUID, req *types.CreateProfileRequest) (*models.UserProfile, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, invalidInput("username is required")
	}

	now := time.Now().UTC()
	profile := models.UserProfile{
		UserID:            userID,
		Email:             req.Email,
		Username:          strings.TrimSpace(req.Username),
		DietaryLifestyle:  req.DietaryLifestyle,
		Allergies:         models.StringList(req.Allergies),
		ReligiousPractice: req.ReligiousPractice,
		CalorieGoal:       req.CalorieGoal,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	updates := clause.AssignmentColumns([]string{
		"email", "username", "dietary_lifestyle", "allergies", "religious_practice", "calorie_goal", "updated_at",
	})
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "version"},
		Value:  gorm.Expr("user_profiles.version + 1"),
	})

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: updates,
	}).Create(&profile).Error; err != nil {
		return nil, storeError("create profile", err)
	}

	var stored models.UserProfile
	if err := tx.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, storeError("create profile", err)
	}
	return &stored, nil
}

// UpdateUserProfile merges the provided fields into the stored profile in a single statement
func (s *ProfileService) UpdateUserProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	var updated models.UserProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.UserProfile
		if err := tx.Where("user_id = ?", userID).First(&current).Error; err != nil {
			return storeError("update profile", err)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != current.Version {
			return ErrVersionConflict
		}
		if req.Empty() {
			updated = current
			return nil
		}

		now := time.Now().UTC()
		changes := map[string]interface{}{
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		}
		var history []models.ProfileHistory
		record := func(field, oldValue, newValue string) {
			if oldValue == newValue {
				return
			}
			history = append(history, models.ProfileHistory{
				UserID:    userID,
				Field:     field,
				OldValue:  oldValue,
				NewValue:  newValue,
				ChangedAt: now,
				ChangedBy: userID,
			})
		}

		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			changes["username"] = username
			record("username", current.Username, username)
		}
		if req.DietaryLifestyle != nil {
			changes["dietary_lifestyle"] = *req.DietaryLifestyle
			record("dietary_lifestyle", current.DietaryLifestyle, *req.DietaryLifestyle)
		}
		if req.Allergies != nil {
			allergies := models.StringList(*req.Allergies)
			changes["allergies"] = allergies
			record("allergies", strings.Join(current.Allergies, ", "), strings.Join(allergies, ", "))
		}
		if req.ReligiousPractice != nil {
			changes["religious_practice"] = *req.ReligiousPractice
			record("religious_practice", current.ReligiousPractice, *req.ReligiousPractice)
		}
		if req.CalorieGoal != nil {
			changes["calorie_goal"] = *req.CalorieGoal
			record("calorie_goal", current.CalorieGoal, *req.CalorieGoal)
		}

		query := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID)
		if req.ExpectedVersion != nil {
			query = query.Where("version = ?", *req.ExpectedVersion)
		}
		result := query.Updates(changes)
		if result.Error != nil {
			return storeError("update profile", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if len(history) > 0 {
			if err := tx.Create(&history).Error; err != nil {
				return storeError("record profile history", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).First(&updated).Error; err != nil {
			return storeError("update profile", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			s.logger.Info("profile version conflict", zap.String("user_id", userID.String()))
		}
		return nil, err
	}

	return &updated, nil
}

// GetProfileHistory retrieves the change history for a user's profile, newest first
func (s *ProfileService) GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error) {
	history := []models.ProfileHistory{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("changed_at DESC, id DESC").
		Find(&history).Error; err != nil {
		return nil, storeError("get profile history", err)
	}
	return history, nil
}

// requireProfile fails with ErrNotFound when userID has no profile
func requireProfile(tx *gorm.DB, userID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return storeError("lookup profile", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
