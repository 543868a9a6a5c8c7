package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService handles saved recipe operations and sharing to the public feed
type RecipeService struct {
	db       *gorm.DB
	notifier Notifier
	logger   *zap.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, notifier Notifier, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:       db,
		notifier: notifier,
		logger:   logger,
	}
}

// ContentHash identifies a recipe by its title and ingredient set. Ingredient order, case and
// surrounding whitespace are ignored.
func ContentHash(content *types.RecipeContent) string {
	ingredients := make([]string, 0, len(content.Ingredients))
	for _, ing := range content.Ingredients {
		if n := normalize(ing); n != "" {
			ingredients = append(ingredients, n)
		}
	}
	sort.Strings(ingredients)

	h := sha256.New()
	h.Write([]byte(normalize(content.Title)))
	for _, ing := range ingredients {
		h.Write([]byte{'\n'})
		h.Write([]byte(ing))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func validateContent(content *types.RecipeContent) error {
	if content == nil || strings.TrimSpace(content.Title) == "" {
		return invalidInput("recipe title is required")
	}
	for _, ing := range content.Ingredients {
		if strings.TrimSpace(ing) != "" {
			return nil
		}
	}
	return invalidInput("recipe needs at least one ingredient")
}

// SaveRecipe adds the recipe to the user's collection. Saving the same content twice fails with ErrAlreadySaved.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, content *types.RecipeContent) (*models.SavedRecipe, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	recipe := models.SavedRecipe{
		UserID:       userID,
		ID:           uuid.New(),
		Title:        strings.TrimSpace(content.Title),
		Ingredients:  models.StringList(content.Ingredients),
		Instructions: models.StringList(content.Instructions),
		CookingTime:  content.CookingTime,
		Difficulty:   content.Difficulty,
		Servings:     content.Servings,
		Calories:     content.Calories,
		ContentHash:  ContentHash(content),
		SavedAt:      time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProfile(tx, userID); err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_hash"}},
			DoNothing: true,
		}).Create(&recipe)
		if result.Error != nil {
			return storeError("save recipe", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadySaved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("recipe saved",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipe.ID.String()))
	return &recipe, nil
}

// ListSavedRecipes returns the user's collection, most recently saved first
func (s *RecipeService) ListSavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	recipes := []models.SavedRecipe{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC, id ASC").
		Find(&recipes).Error; err != nil {
		return nil, storeError("list saved recipes", err)
	}
	return recipes, nil
}

// GetSavedRecipe retrieves one saved recipe
func (s *RecipeService) GetSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, recipeID).
		First(&recipe).Error; err != nil {
		return nil, storeError("get saved recipe", err)
	}
	return &recipe, nil
}

// DeleteSavedRecipe removes a recipe from the collection. Deleting an absent recipe is a no-op.
// A feed entry created from the recipe stays in the feed.
func (s *RecipeService) DeleteSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return storeError("delete saved recipe", s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{}).Error)
}

// IsRecipeSaved reports whether content with the same identity is already in the collection
func (s *RecipeService) IsRecipeSaved(ctx context.Context, userID uuid.UUID, content *types.RecipeContent) (bool, error) {
	if err := validateContent(content); err != nil {
		return false, err
	}
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.SavedRecipe{}).
		Where("user_id = ? AND content_hash = ?", userID, ContentHash(content)).
		Count(&count).Error; err != nil {
		return false, storeError("check saved recipe", err)
	}
	return count > 0, nil
}

// ShareRecipe publishes a copy of a saved recipe to the feed and marks it shared.
// Sharing a recipe that is already shared returns the existing feed entry.
func (s *RecipeService) ShareRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SharedRecipe, error) {
	var entry models.SharedRecipe
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.SavedRecipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND id = ?", userID, recipeID).
			First(&recipe).Error; err != nil {
			return storeError("share recipe", err)
		}

		err := tx.Where("shared_by = ? AND original_recipe_id = ?", userID, recipeID).First(&entry).Error
		switch {
		case err == nil:
			if !recipe.Shared {
				return markShared(tx, userID, recipeID)
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return storeError("share recipe", err)
		}

		var profile models.UserProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return storeError("share recipe", err)
		}

		entry = models.SharedRecipe{
			ID:               uuid.New(),
			Title:            recipe.Title,
			Ingredients:      recipe.Ingredients,
			Instructions:     recipe.Instructions,
			CookingTime:      recipe.CookingTime,
			Difficulty:       recipe.Difficulty,
			Servings:         recipe.Servings,
			Calories:         recipe.Calories,
			SharedBy:         userID,
			SharedByUsername: profile.Username,
			OriginalRecipeID: recipeID,
			SharedAt:         time.Now().UTC(),
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shared_by"}, {Name: "original_recipe_id"}},
			DoNothing: true,
		}).Create(&entry)
		if result.Error != nil {
			return storeError("share recipe", result.Error)
		}
		if result.RowsAffected == 0 {
			// A concurrent share won the insert.
			if err := tx.Where("shared_by = ? AND original_recipe_id = ?", userID, recipeID).First(&entry).Error; err != nil {
				return storeError("share recipe", err)
			}
		} else {
			created = true
		}
		return markShared(tx, userID, recipeID)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("recipe shared",
			zap.String("user_id", userID.String()),
			zap.String("recipe_id", recipeID.String()),
			zap.String("shared_id", entry.ID.String()))
		if err := s.notifier.Publish(ctx); err != nil {
			s.logger.Warn("failed to publish feed change", zap.Error(err))
		}
	}
	return &entry, nil
}

func markShared(tx *gorm.DB, userID, recipeID uuid.UUID) error {
	return storeError("mark recipe shared", tx.Model(&models.SavedRecipe{}).
		Where("user_id = ? AND id = ?", userID, recipeID).
		Update("shared", true).Error)
}
