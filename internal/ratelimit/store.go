package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of one quota check. Computed fresh on every call,
// never stored.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store is a fixed-window counter backend. Every Check consumes one unit of
// quota for the key — there is no read-only probe.
type Store interface {
	Check(ctx context.Context, key string, window time.Duration, max int) Result
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps counters in a per-process map. Quotas are therefore
// per-instance: two instances each allow the full limit. Acceptable for a
// low-traffic site, not for anything security-critical.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Check(_ context.Context, key string, window time.Duration, max int) Result {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || !now.Before(ent.resetAt) {
		resetAt := now.Add(window)
		s.entries[key] = &memoryEntry{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Remaining: max - 1, ResetAt: resetAt}
	}

	ent.count++
	remaining := max - ent.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   ent.count <= max,
		Remaining: remaining,
		ResetAt:   ent.resetAt,
	}
}

// Cleanup drops entries whose window has expired.
func (s *MemoryStore) Cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ent := range s.entries {
		if !now.Before(ent.resetAt) {
			delete(s.entries, key)
		}
	}
}

// Len reports the number of live entries. Test hook.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor sweeps expired entries on a fixed interval until the context
// is cancelled, bounding memory growth in long-lived processes.
func (s *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
