package processors

import (
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/logger"
	"storefront/internal/worker/processors/stats"

	"gorm.io/gorm"
)

type EventProcessor struct {
	config *config.Config
	logger *logger.Logger
	stats  *stats.Refresher
}

func NewEventProcessor(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *EventProcessor {
	return &EventProcessor{
		config: cfg,
		logger: logger,
		stats:  stats.New(cfg, logger, db),
	}
}

// Process reacts to one order event. Every order mutation invalidates
// the dashboard aggregates, so each event type triggers a refresh.
func (ep *EventProcessor) Process(event events.Event) error {
	switch event.Type {
	case events.TypeOrderCreated, events.TypeOrderUpdated, events.TypeOrderDeleted:
		return ep.stats.Refresh()
	default:
		ep.logger.Warn("Ignoring unknown event type %q", event.Type)
		return nil
	}
}
