package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OnboardingService tracks whether a user has finished the onboarding flow
type OnboardingService struct {
	redis *redis.Client
}

var _ IOnboardingService = (*OnboardingService)(nil)

// NewOnboardingService creates the service. A nil client makes every call fail with ErrNotConfigured.
func NewOnboardingService(client *redis.Client) *OnboardingService {
	return &OnboardingService{redis: client}
}

func onboardingKey(userID uuid.UUID) string {
	return fmt.Sprintf("culina:onboarding:%s", userID)
}

func (s *OnboardingService) IsComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.redis == nil {
		return false, fmt.Errorf("onboarding: %w", ErrNotConfigured)
	}
	n, err := s.redis.Exists(ctx, onboardingKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("onboarding: %w: %w", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

func (s *OnboardingService) MarkComplete(ctx context.Context, userID uuid.UUID) error {
	if s.redis == nil {
		return fmt.Errorf("onboarding: %w", ErrNotConfigured)
	}
	if err := s.redis.Set(ctx, onboardingKey(userID), "true", 0).Err(); err != nil {
		return fmt.Errorf("onboarding: %w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *OnboardingService) Reset(ctx context.Context, userID uuid.UUID) error {
	if s.redis == nil {
		return fmt.Errorf("onboarding: %w", ErrNotConfigured)
	}
	if err := s.redis.Del(ctx, onboardingKey(userID)).Err(); err != nil {
		return fmt.Errorf("onboarding: %w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
