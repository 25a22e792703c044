package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Limiter binds one endpoint's policy to a shared Store. Several limiters
// may share a store safely because every key is namespaced by prefix.
type Limiter struct {
	store  Store
	window time.Duration
	max    int
	prefix string
}

func NewLimiter(store Store, window time.Duration, max int, prefix string) *Limiter {
	return &Limiter{store: store, window: window, max: max, prefix: prefix}
}

func (l *Limiter) Check(ctx context.Context, identifier string) Result {
	key := identifier
	if l.prefix != "" {
		key = l.prefix + ":" + identifier
	}
	return l.store.Check(ctx, key, l.window, l.max)
}

// ClientIP derives the rate-limit caller key. Behind a proxy chain only the
// first x-forwarded-for entry is the client; later hops are appended by
// intermediaries and easier to spoof.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("Cf-Connecting-Ip"); ip != "" {
		return ip
	}
	return "unknown"
}
