package stats

import (
	"context"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/services/orders"

	"gorm.io/gorm"
)

// Refresher recomputes the dashboard aggregates and pushes them into
// the Redis cache the API reads from.
type Refresher struct {
	logger  *logger.Logger
	service *orders.Service
	cache   *cache.StatsCache
}

func New(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *Refresher {
	return &Refresher{
		logger:  logger,
		service: orders.NewService(db),
		cache:   cache.New(cfg.RedisURL, logger),
	}
}

func (r *Refresher) Refresh() error {
	stats, err := r.service.DashboardStats()
	if err != nil {
		return err
	}
	r.cache.Set(context.Background(), stats)
	r.logger.Debug("Dashboard stats refreshed: %d orders", stats.TotalOrders)
	return nil
}
