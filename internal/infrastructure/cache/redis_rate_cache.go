package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const rateTableKey = "pricing:rate_table"

// RedisRateCache caches the latest exchange-rate table in Redis so that
// invoice conversion does not hit the database on every request. Any
// Redis failure degrades to a cache miss; callers fall through to the
// repository.
type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisRateCache creates a rate cache backed by an existing Redis client.
func NewRedisRateCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRateCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRateCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetRates returns the cached rate table, or ok=false on miss or error.
func (c *RedisRateCache) GetRates(ctx context.Context) (pricing.RateTable, bool) {
	payload, err := c.client.Get(ctx, rateTableKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("rate cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var raw map[string]string
	if err := json.Unmarshal(payload, &raw); err != nil {
		c.logger.Warn("rate cache payload corrupt, invalidating", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}

	table := make(pricing.RateTable, len(raw))
	for currency, rate := range raw {
		value, err := decimal.NewFromString(rate)
		if err != nil {
			c.logger.Warn("rate cache payload corrupt, invalidating",
				zap.String("currency", currency), zap.Error(err))
			c.Invalidate(ctx)
			return nil, false
		}
		table[valueobject.Currency(currency)] = value
	}
	return table, true
}

// SetRates stores the rate table with the configured TTL. Failures are
// logged and swallowed.
func (c *RedisRateCache) SetRates(ctx context.Context, rates pricing.RateTable) {
	raw := make(map[string]string, len(rates))
	for currency, rate := range rates {
		raw[string(currency)] = rate.String()
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		c.logger.Warn("rate cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, rateTableKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("rate cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached table. Called after a new rate is recorded.
func (c *RedisRateCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, rateTableKey).Err(); err != nil {
		c.logger.Warn("rate cache invalidation failed", zap.Error(err))
	}
}
