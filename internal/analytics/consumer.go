package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"food-delivery/internal/domain"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, event domain.OrderEvent) error
}

// Consumer reads order events off Kafka and feeds the popularity counters.
type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
	Log    *slog.Logger
}

func NewConsumer(reader *kafka.Reader, store StoreInterface, log *slog.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    log,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("analytics consumer starting")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.Log.Info("analytics consumer stopping")
				return
			}
			c.Log.Error("read message", "error", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.Error("unmarshal order event", "error", err)
			continue
		}
		c.Process(ctx, event)
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderCreated {
		return
	}
	if err := c.Store.RecordOrder(ctx, event); err != nil {
		c.Log.Error("record order analytics", "order_id", event.OrderID, "error", err)
		return
	}
	c.Log.Debug("order recorded", "order_id", event.OrderID, "restaurant_id", event.RestaurantID)
}
