package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// A client pointed at a port nothing listens on makes every pipeline call
// fail, which is exactly the outage the fail-open policy is about.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            "127.0.0.1:1",
		DialTimeout:     50 * time.Millisecond,
		ReadTimeout:     50 * time.Millisecond,
		WriteTimeout:    50 * time.Millisecond,
		MaxRetries:      -1,
		PoolTimeout:     100 * time.Millisecond,
		MinIdleConns:    0,
		ConnMaxIdleTime: time.Second,
	})
}

func TestRedisStore_FailsOpenOnBackendError(t *testing.T) {
	store := NewRedisStoreFromClient(unreachableClient())
	defer store.Close()

	res := store.Check(context.Background(), "chat:1.2.3.4", time.Minute, 10)
	if !res.Allowed {
		t.Fatal("expected allowed when backend is down (fail open)")
	}
	if res.Remaining != 10 {
		t.Fatalf("remaining = %d, want full quota on fail-open", res.Remaining)
	}
	if res.ResetAt.Before(time.Now()) {
		t.Fatal("resetAt should still point at the window boundary")
	}
}

func TestRedisStore_FailsClosedWhenConfigured(t *testing.T) {
	store := NewRedisStoreFromClient(unreachableClient(), WithFailOpen(false))
	defer store.Close()

	res := store.Check(context.Background(), "chat:1.2.3.4", time.Minute, 10)
	if res.Allowed {
		t.Fatal("expected denied when backend is down and failOpen is off")
	}
	if res.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", res.Remaining)
	}
}

func TestNewRedisStore_RejectsBadURL(t *testing.T) {
	if _, err := NewRedisStore("not-a-redis-url"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}
