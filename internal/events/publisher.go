package events

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/config"
	"storefront/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated = "order.created"
	TypeOrderUpdated = "order.updated"
	TypeOrderDeleted = "order.deleted"
)

type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	OrderNumber string    `json:"order_number"`
	Timestamp   time.Time `json:"timestamp"`
}

type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(cfg *config.Config, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers),
		Topic:        cfg.OrderEventTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish emits an order event. Publishing is best-effort: a broker
// failure is logged and never surfaced to the API caller.
func (p *Publisher) Publish(ctx context.Context, eventType, orderNumber string) {
	if p == nil {
		return
	}

	event := Event{
		ID:          uuid.New().String(),
		Type:        eventType,
		OrderNumber: orderNumber,
		Timestamp:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event: %v", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderNumber),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("Failed to publish %s for %s: %v", eventType, orderNumber, err)
		return
	}

	p.logger.Debug("Published %s for %s", eventType, orderNumber)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
