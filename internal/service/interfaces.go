package service

import (
	"context"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/types"
	"github.com/google/uuid"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	CreateUserProfile(ctx context.Context, userID uuid.UUID, req *types.CreateProfileRequest) (*models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error)
}

// IIngredientService defines the interface for pantry operations
type IIngredientService interface {
	ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, userID uuid.UUID, ingredientID string) (*models.Ingredient, error)
	UpsertIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, userID uuid.UUID, ingredientID string) error
	SetIngredientImage(ctx context.Context, userID uuid.UUID, ingredientID, key string) error
}

// IRecipeService defines the interface for saved recipe operations
type IRecipeService interface {
	SaveRecipe(ctx context.Context, userID uuid.UUID, content *types.RecipeContent) (*models.SavedRecipe, error)
	ListSavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error)
	GetSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error)
	DeleteSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	IsRecipeSaved(ctx context.Context, userID uuid.UUID, content *types.RecipeContent) (bool, error)
	ShareRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.SharedRecipe, error)
}

// IFeedService defines the interface for the public shared-recipe feed
type IFeedService interface {
	ListSharedRecipes(ctx context.Context) ([]models.SharedRecipe, error)
	Subscribe(ctx context.Context) (<-chan []models.SharedRecipe, error)
}

// ILLMService defines the interface for the AI recipe generator and assistant
type ILLMService interface {
	GenerateRecipes(ctx context.Context, userID uuid.UUID, req *types.GenerateRecipesRequest) ([]types.GeneratedRecipe, error)
	RecentGenerated(ctx context.Context, userID uuid.UUID) ([]types.GeneratedRecipe, error)
	Chat(ctx context.Context, message string) (string, error)
}

// IImageService defines the interface for ingredient image storage
type IImageService interface {
	PresignUpload(ctx context.Context, userID uuid.UUID, ingredientID, contentType string) (*types.ImageUploadResponse, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// IOnboardingService defines the interface for the onboarding flag
type IOnboardingService interface {
	IsComplete(ctx context.Context, userID uuid.UUID) (bool, error)
	MarkComplete(ctx context.Context, userID uuid.UUID) error
	Reset(ctx context.Context, userID uuid.UUID) error
}
