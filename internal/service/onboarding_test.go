package service

import (
	"context"
	"testing"

	"github.com/culina/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingService(t *testing.T) {
	ctx := context.Background()
	mr, client := testhelpers.SetupRedis(t)
	svc := NewOnboardingService(client)
	userID := uuid.New()

	done, err := svc.IsComplete(ctx, userID)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, svc.MarkComplete(ctx, userID))
	done, err = svc.IsComplete(ctx, userID)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, mr.Exists("culina:onboarding:"+userID.String()))

	other, err := svc.IsComplete(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, other)

	require.NoError(t, svc.Reset(ctx, userID))
	done, err = svc.IsComplete(ctx, userID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestOnboardingWithoutRedis(t *testing.T) {
	svc := NewOnboardingService(nil)
	_, err := svc.IsComplete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOnboardingRedisDown(t *testing.T) {
	mr, client := testhelpers.SetupRedis(t)
	svc := NewOnboardingService(client)
	mr.SetError("LOADING server is loading")

	err := svc.MarkComplete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
