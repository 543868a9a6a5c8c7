package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/types"
)

// MockIngredientService is a mock implementation of the IngredientService interface
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) GetIngredient(ctx context.Context, userID uuid.UUID, ingredientID string) (*models.Ingredient, error) {
	args := m.Called(ctx, userID, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) UpsertIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) (*models.Ingredient, error) {
	args := m.Called(ctx, userID, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) DeleteIngredient(ctx context.Context, userID uuid.UUID, ingredientID string) error {
	return m.Called(ctx, userID, ingredientID).Error(0)
}

func (m *MockIngredientService) SetIngredientImage(ctx context.Context, userID uuid.UUID, ingredientID, key string) error {
	return m.Called(ctx, userID, ingredientID, key).Error(0)
}

// MockImageService is a mock implementation of the ImageService interface
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) PresignUpload(ctx context.Context, userID uuid.UUID, ingredientID, contentType string) (*types.ImageUploadResponse, error) {
	args := m.Called(ctx, userID, ingredientID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ImageUploadResponse), args.Error(1)
}

func (m *MockImageService) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
