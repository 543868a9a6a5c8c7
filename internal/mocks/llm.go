package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/culina/backend/internal/types"
)

// MockLLMService is a mock implementation of the LLMService interface
type MockLLMService struct {
	mock.Mock
}

func (m *MockLLMService) GenerateRecipes(ctx context.Context, userID uuid.UUID, req *types.GenerateRecipesRequest) ([]types.GeneratedRecipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.GeneratedRecipe), args.Error(1)
}

func (m *MockLLMService) RecentGenerated(ctx context.Context, userID uuid.UUID) ([]types.GeneratedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.GeneratedRecipe), args.Error(1)
}

func (m *MockLLMService) Chat(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
