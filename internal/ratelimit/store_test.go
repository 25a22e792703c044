package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_AllowsUpToMaxThenDenies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res := store.Check(ctx, "k", time.Minute, 5)
		if !res.Allowed {
			t.Fatalf("call %d: expected allowed", i+1)
		}
		if want := 5 - (i + 1); res.Remaining != want {
			t.Fatalf("call %d: remaining = %d, want %d", i+1, res.Remaining, want)
		}
	}

	res := store.Check(ctx, "k", time.Minute, 5)
	if res.Allowed {
		t.Fatal("6th call: expected denied")
	}
	if res.Remaining != 0 {
		t.Fatalf("6th call: remaining = %d, want 0", res.Remaining)
	}
}

func TestMemoryStore_WindowResets(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	window := 30 * time.Millisecond

	for i := 0; i < 3; i++ {
		store.Check(ctx, "k", window, 2)
	}
	if res := store.Check(ctx, "k", window, 2); res.Allowed {
		t.Fatal("expected denied before reset")
	}

	time.Sleep(window + 10*time.Millisecond)

	res := store.Check(ctx, "k", window, 2)
	if !res.Allowed {
		t.Fatal("expected allowed after window reset")
	}
	if res.Remaining != 1 {
		t.Fatalf("remaining after reset = %d, want 1", res.Remaining)
	}
}

func TestMemoryStore_WindowLifetimeFromFirstTouch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	before := time.Now()
	res := store.Check(ctx, "k", time.Minute, 5)
	after := time.Now()

	if res.ResetAt.Before(before.Add(time.Minute)) || res.ResetAt.After(after.Add(time.Minute)) {
		t.Fatalf("resetAt = %v, want ~1m after first touch", res.ResetAt)
	}

	// Later calls keep the original deadline.
	res2 := store.Check(ctx, "k", time.Minute, 5)
	if !res2.ResetAt.Equal(res.ResetAt) {
		t.Fatalf("resetAt moved: %v -> %v", res.ResetAt, res2.ResetAt)
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Check(ctx, "a", time.Minute, 1)
	if res := store.Check(ctx, "a", time.Minute, 1); res.Allowed {
		t.Fatal("key a should be exhausted")
	}
	if res := store.Check(ctx, "b", time.Minute, 1); !res.Allowed {
		t.Fatal("key b should have its own quota")
	}
}

func TestMemoryStore_ConcurrentChecksCountEveryCall(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const calls = 50
	const max = 10

	var wg sync.WaitGroup
	allowed := make(chan bool, calls)

	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- store.Check(ctx, "k", time.Minute, max).Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != max {
		t.Fatalf("allowed %d concurrent calls, want exactly %d", count, max)
	}
}

func TestMemoryStore_CleanupDropsOnlyExpiredEntries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Check(ctx, "short", 10*time.Millisecond, 5)
	store.Check(ctx, "long", time.Minute, 5)

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()

	if store.Len() != 1 {
		t.Fatalf("entries after cleanup = %d, want 1", store.Len())
	}

	// The surviving window still counts prior calls.
	res := store.Check(ctx, "long", time.Minute, 5)
	if res.Remaining != 3 {
		t.Fatalf("remaining = %d, want 3", res.Remaining)
	}
}

func TestMemoryStore_JanitorStopsOnCancel(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	store.StartJanitor(ctx, 5*time.Millisecond)
	store.Check(context.Background(), "k", 1*time.Millisecond, 5)

	time.Sleep(30 * time.Millisecond)
	if store.Len() != 0 {
		t.Fatalf("janitor did not sweep, %d entries left", store.Len())
	}
	cancel()
}
