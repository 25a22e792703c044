package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares one fixed-window counter across every instance. The
// window key folds the current time into the window number, so all callers
// inside the same window land on the same Redis key and the reset moment
// falls on the window boundary rather than on first touch.
type RedisStore struct {
	client   *redis.Client
	failOpen bool
}

type RedisOption func(*RedisStore)

// WithFailOpen controls behavior on Redis errors. Failing open (the default)
// trades strict enforcement during an outage for availability.
func WithFailOpen(failOpen bool) RedisOption {
	return func(s *RedisStore) { s.failOpen = failOpen }
}

func NewRedisStore(redisURL string, opts ...RedisOption) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	s := &RedisStore{client: redis.NewClient(opt), failOpen: true}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, failOpen: true}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *RedisStore) Check(ctx context.Context, key string, window time.Duration, max int) Result {
	now := time.Now()
	windowNum := now.UnixMilli() / window.Milliseconds()
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, windowNum)
	resetAt := time.UnixMilli((windowNum + 1) * window.Milliseconds())

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.PExpire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("rate limit redis error: %v", err)
		if s.failOpen {
			return Result{Allowed: true, Remaining: max, ResetAt: resetAt}
		}
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	count := int(incr.Val())
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
