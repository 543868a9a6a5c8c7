package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/culina/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxIngredientIDLength matches the ingredients.id column width
const maxIngredientIDLength = 128

// IngredientService manages a user's pantry. Each ingredient is its own row keyed by (user_id, id).
type IngredientService struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ IIngredientService = (*IngredientService)(nil)

func NewIngredientService(db *gorm.DB, logger *zap.Logger) *IngredientService {
	return &IngredientService{db: db, logger: logger}
}

// ListIngredients returns the pantry in insertion order. A user without a profile has an empty pantry.
func (s *IngredientService) ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&ingredients).Error; err != nil {
		return nil, storeError("list ingredients", err)
	}
	return ingredients, nil
}

// GetIngredient returns one ingredient or ErrNotFound
func (s *IngredientService) GetIngredient(ctx context.Context, userID uuid.UUID, ingredientID string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, ingredientID).
		First(&ingredient).Error; err != nil {
		return nil, storeError("get ingredient", err)
	}
	return &ingredient, nil
}

// UpsertIngredient inserts the ingredient or replaces the one with the same id
func (s *IngredientService) UpsertIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if strings.TrimSpace(ingredient.Name) == "" {
		return nil, invalidInput("ingredient name is required")
	}

	if len(ingredient.ID) > maxIngredientIDLength {
		return nil, invalidInput(fmt.Sprintf("ingredient id longer than %d characters", maxIngredientIDLength))
	}

	row := *ingredient
	row.UserID = userID
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	var stored models.Ingredient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, userID); err != nil {
			return err
		}

		// created_at is left out of the update set so a replaced ingredient keeps its position.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "quantity", "unit", "category", "image", "calories", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return storeError("upsert ingredient", err)
		}

		return storeError("upsert ingredient", tx.Where("user_id = ? AND id = ?", userID, row.ID).First(&stored).Error)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("ingredient upserted",
		zap.String("user_id", userID.String()),
		zap.String("ingredient_id", stored.ID))
	return &stored, nil
}

// DeleteIngredient removes one ingredient. Deleting an absent ingredient is a no-op.
func (s *IngredientService) DeleteIngredient(ctx context.Context, userID uuid.UUID, ingredientID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, userID); err != nil {
			return err
		}
		return storeError("delete ingredient",
			tx.Where("user_id = ? AND id = ?", userID, ingredientID).Delete(&models.Ingredient{}).Error)
	})
}

// SetIngredientImage stores an object key on an existing ingredient
func (s *IngredientService) SetIngredientImage(ctx context.Context, userID uuid.UUID, ingredientID, key string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("user_id = ? AND id = ?", userID, ingredientID).
		Updates(map[string]interface{}{"image": key, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return storeError("set ingredient image", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
