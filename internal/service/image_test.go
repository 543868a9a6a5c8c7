package service

import (
	"context"
	"strings"
	"testing"

	"github.com/culina/backend/config"
	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImageService(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)
	u1 := testhelpers.CreateTestUser(t, s.db, "u1")
	_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "egg", Name: "Egg"})
	require.NoError(t, err)

	s3cfg := config.NewStaticS3Config("culina-test", "us-east-1", "AKIDEXAMPLE", "secret")
	svc := NewImageService(s3cfg, s.ingredients, zap.NewNop())

	t.Run("presign upload stores the key", func(t *testing.T) {
		resp, err := svc.PresignUpload(ctx, u1, "egg", "image/jpeg")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.Key, "ingredients/"+u1.String()+"/egg/"))
		assert.Contains(t, resp.UploadURL, "X-Amz-Signature=")

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		assert.Equal(t, resp.Key, list[0].Image)

		url, err := svc.PresignDownload(ctx, resp.Key)
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Expires=900")
	})

	t.Run("unknown ingredient", func(t *testing.T) {
		_, err := svc.PresignUpload(ctx, u1, "missing", "image/jpeg")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := svc.PresignUpload(ctx, u1, "a/b", "image/jpeg")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not configured", func(t *testing.T) {
		unconfigured := NewImageService(nil, s.ingredients, zap.NewNop())
		_, err := unconfigured.PresignUpload(ctx, u1, "egg", "image/jpeg")
		assert.ErrorIs(t, err, ErrNotConfigured)
		_, err = unconfigured.PresignDownload(ctx, "ingredients/x")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}
