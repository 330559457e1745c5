package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cargoflow/backend/internal/domain/pricing"
)

// InMemoryRateCache caches the exchange-rate table in process memory.
// Suitable for single-instance deployments and testing; multi-instance
// deployments should use RedisRateCache so that invalidation after a
// new rate is recorded reaches every instance.
type InMemoryRateCache struct {
	mu        sync.RWMutex
	rates     pricing.RateTable
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryRateCache creates a rate cache with the given TTL.
func NewInMemoryRateCache(ttl time.Duration) *InMemoryRateCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &InMemoryRateCache{ttl: ttl}
}

// GetRates returns the cached table, or ok=false on miss or expiry.
func (c *InMemoryRateCache) GetRates(ctx context.Context) (pricing.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rates == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}

	// Copy so callers cannot mutate the cached table.
	table := make(pricing.RateTable, len(c.rates))
	for currency, rate := range c.rates {
		table[currency] = rate
	}
	return table, true
}

// SetRates stores the table until the TTL elapses.
func (c *InMemoryRateCache) SetRates(ctx context.Context, rates pricing.RateTable) {
	table := make(pricing.RateTable, len(rates))
	for currency, rate := range rates {
		table[currency] = rate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = table
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached table.
func (c *InMemoryRateCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = nil
}
