package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/culina/backend/config"
	"github.com/culina/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const presignExpiry = 15 * time.Minute

// ImageService hands out presigned S3 URLs for ingredient photos
type ImageService struct {
	s3Config    *config.S3Config
	ingredients IIngredientService
	logger      *zap.Logger
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance. s3Config may be nil when storage is not configured.
func NewImageService(s3Config *config.S3Config, ingredients IIngredientService, logger *zap.Logger) *ImageService {
	return &ImageService{
		s3Config:    s3Config,
		ingredients: ingredients,
		logger:      logger,
	}
}

// ImageKey builds the object key for a new photo of an ingredient
func ImageKey(userID uuid.UUID, ingredientID string) string {
	return fmt.Sprintf("ingredients/%s/%s/%s", userID, ingredientID, uuid.NewString())
}

// PresignUpload reserves an object key on the ingredient and returns a URL the client can PUT the photo to
func (s *ImageService) PresignUpload(ctx context.Context, userID uuid.UUID, ingredientID, contentType string) (*types.ImageUploadResponse, error) {
	if s.s3Config == nil {
		return nil, fmt.Errorf("image storage: %w", ErrNotConfigured)
	}
	if strings.TrimSpace(ingredientID) == "" || strings.Contains(ingredientID, "/") {
		return nil, invalidInput("invalid ingredient id")
	}

	key := ImageKey(userID, ingredientID)
	url, err := s.s3Config.GeneratePresignedUploadURL(ctx, key, contentType, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w: %w", ErrStoreUnavailable, err)
	}

	if err := s.ingredients.SetIngredientImage(ctx, userID, ingredientID, key); err != nil {
		return nil, err
	}

	s.logger.Debug("presigned ingredient upload",
		zap.String("user_id", userID.String()),
		zap.String("key", key))
	return &types.ImageUploadResponse{UploadURL: url, Key: key}, nil
}

// PresignDownload returns a short-lived GET URL for a stored object key
func (s *ImageService) PresignDownload(ctx context.Context, key string) (string, error) {
	if s.s3Config == nil {
		return "", fmt.Errorf("image storage: %w", ErrNotConfigured)
	}
	if key == "" {
		return "", invalidInput("image key is required")
	}
	url, err := s.s3Config.GeneratePresignedURL(ctx, key, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w: %w", ErrStoreUnavailable, err)
	}
	return url, nil
}
