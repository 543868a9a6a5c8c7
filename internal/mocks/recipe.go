package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/types"
)

// MockRecipeService is a mock implementation of the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, content *types.RecipeContent) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) ListSavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) GetSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) DeleteSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeService) IsRecipeSaved(ctx context.Context, userID uuid.UUID, content *types.RecipeContent) (bool, error) {
	args := m.Called(ctx, userID, content)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeService) ShareRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SharedRecipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SharedRecipe), args.Error(1)
}

// MockFeedService is a mock implementation of the FeedService interface
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListSharedRecipes(ctx context.Context) ([]models.SharedRecipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SharedRecipe), args.Error(1)
}

func (m *MockFeedService) Subscribe(ctx context.Context) (<-chan []models.SharedRecipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan []models.SharedRecipe), args.Error(1)
}
