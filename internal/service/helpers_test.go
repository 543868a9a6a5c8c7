package service

import (
	"testing"

	"github.com/culina/backend/internal/testhelpers"
	"github.com/culina/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testStores struct {
	db          *gorm.DB
	notifier    *LocalNotifier
	profiles    *ProfileService
	ingredients *IngredientService
	recipes     *RecipeService
	feed        *FeedService
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	return newStores(db)
}

func newStores(db *gorm.DB) *testStores {
	log := zap.NewNop()
	notifier := NewLocalNotifier()
	return &testStores{
		db:          db,
		notifier:    notifier,
		profiles:    NewProfileService(db, log),
		ingredients: NewIngredientService(db, log),
		recipes:     NewRecipeService(db, notifier, log),
		feed:        NewFeedService(db, notifier, log),
	}
}

func pancakes() *types.RecipeContent {
	return &types.RecipeContent{
		Title:        "Pancakes",
		Ingredients:  []string{"2 eggs", "1 cup flour", "1 cup milk"},
		Instructions: []string{"Step 1: Whisk", "Step 2: Fry"},
		CookingTime:  "20 minutes",
		Difficulty:   "Easy",
		Servings:     2,
	}
}
