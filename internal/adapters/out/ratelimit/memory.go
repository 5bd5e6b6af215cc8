// Package ratelimit provides deletion limiter implementations.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/pkg/logger"
)

// Ensure MemoryStore implements out.DeletionLimiter.
var _ out.DeletionLimiter = (*MemoryStore)(nil)

// MemoryStore is an in-memory limiter using golang.org/x/time/rate.
// Each unique key (repository) gets its own independent limiter.
type MemoryStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	limit    rate.Limit
	burst    int
	log      *logger.Logger
}

// NewMemoryStore creates a limiter allowing perSecond deletes per key.
// A non-positive perSecond disables pacing.
func NewMemoryStore(perSecond float64, burst int, log *logger.Logger) *MemoryStore {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &MemoryStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
		log:      log,
	}
}

// Wait blocks until a delete for key may proceed or ctx is done.
func (s *MemoryStore) Wait(ctx context.Context, key string) error {
	if s.Unlimited() {
		return ctx.Err()
	}
	limiter := s.getLimiter(key)
	if limiter.Tokens() < 1 {
		s.log.Debug("Pacing deletes", "key", key, "per_second", float64(s.limit))
	}
	return limiter.Wait(ctx)
}

// Unlimited reports whether the store paces nothing.
func (s *MemoryStore) Unlimited() bool {
	return s.limit == rate.Inf
}

// getLimiter returns the limiter for key, creating one if it doesn't exist.
func (s *MemoryStore) getLimiter(key string) *rate.Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(s.limit, s.burst)
	s.limiters[key] = limiter
	return limiter
}
