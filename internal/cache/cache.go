package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/logger"
	"storefront/internal/services/orders"

	"github.com/redis/go-redis/v9"
)

const statsKey = "storefront:dashboard-stats"

// StatsCache keeps the dashboard aggregates in Redis so the API does
// not recount on every request. A nil client disables caching.
type StatsCache struct {
	client *redis.Client
	logger *logger.Logger
	ttl    time.Duration
}

// New connects to Redis. Connection failure disables the cache rather
// than failing startup.
func New(redisURL string, logger *logger.Logger) *StatsCache {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("Invalid Redis URL %q, caching disabled: %v", redisURL, err)
		return &StatsCache{logger: logger}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, caching disabled: %v", err)
		return &StatsCache{logger: logger}
	}

	return &StatsCache{
		client: client,
		logger: logger,
		ttl:    5 * time.Minute,
	}
}

func (c *StatsCache) Get(ctx context.Context) (*orders.DashboardStats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var stats orders.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		c.logger.Warn("Failed to decode cached stats: %v", err)
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *orders.DashboardStats) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		c.logger.Error("Failed to encode stats: %v", err)
		return
	}
	if err := c.client.Set(ctx, statsKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache stats: %v", err)
	}
}

func (c *StatsCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
