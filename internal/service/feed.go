package service

import (
	"context"

	"github.com/culina/backend/internal/metrics"
	"github.com/culina/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FeedService reads the public shared-recipe feed
type FeedService struct {
	db       *gorm.DB
	notifier Notifier
	logger   *zap.Logger
}

var _ IFeedService = (*FeedService)(nil)

func NewFeedService(db *gorm.DB, notifier Notifier, logger *zap.Logger) *FeedService {
	return &FeedService{db: db, notifier: notifier, logger: logger}
}

// ListSharedRecipes returns every feed entry, newest first
func (s *FeedService) ListSharedRecipes(ctx context.Context) ([]models.SharedRecipe, error) {
	recipes := []models.SharedRecipe{}
	if err := s.db.WithContext(ctx).
		Order("shared_at DESC, id ASC").
		Find(&recipes).Error; err != nil {
		return nil, storeError("list shared recipes", err)
	}
	return recipes, nil
}

// Subscribe delivers the current feed immediately and the full feed again after every change.
// The channel is closed once ctx is cancelled.
func (s *FeedService) Subscribe(ctx context.Context) (<-chan []models.SharedRecipe, error) {
	changes, cancel, err := s.notifier.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	initial, err := s.ListSharedRecipes(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan []models.SharedRecipe, 1)
	out <- initial
	metrics.FeedSubscribers.Inc()

	go func() {
		defer metrics.FeedSubscribers.Dec()
		defer close(out)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				recipes, err := s.ListSharedRecipes(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					s.logger.Warn("failed to refresh feed for subscriber", zap.Error(err))
					continue
				}
				select {
				case out <- recipes:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
