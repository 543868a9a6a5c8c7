package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FeedChannel is the Redis Pub/Sub channel announcing shared-recipe changes
const FeedChannel = "culina:shared_recipes:changed"

// Notifier announces that the shared-recipe feed changed. Notifications carry no payload;
// subscribers re-read the feed. Bursts may be coalesced into one notification.
type Notifier interface {
	Publish(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan struct{}, func(), error)
}

// signal performs a non-blocking send so a slow subscriber only ever has one pending wakeup
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// LocalNotifier broadcasts within the process
type LocalNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[int]chan struct{})}
}

func (n *LocalNotifier) Publish(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		signal(ch)
	}
	return nil
}

func (n *LocalNotifier) Subscribe(ctx context.Context) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
	return ch, cancel, nil
}

// RedisNotifier fans notifications out across instances over Redis Pub/Sub
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

func (n *RedisNotifier) Publish(ctx context.Context) error {
	if err := n.client.Publish(ctx, FeedChannel, "changed").Err(); err != nil {
		return fmt.Errorf("publish feed change: %w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan struct{}, func(), error) {
	pubsub := n.client.Subscribe(ctx, FeedChannel)
	// Wait for the subscription to be confirmed so no publish after return is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe feed changes: %w: %w", ErrStoreUnavailable, err)
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		msgs := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				signal(out)
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			if err := pubsub.Close(); err != nil {
				n.logger.Debug("closing feed subscription", zap.Error(err))
			}
		})
	}
	return out, cancel, nil
}
