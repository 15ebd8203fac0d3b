package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
	EventOrderDeleted = "order_deleted"
)

// OrderEvent is published to Kafka after an order mutation commits.
type OrderEvent struct {
	Type         string         `json:"type"`
	OrderID      uuid.UUID      `json:"order_id"`
	RestaurantID uuid.UUID      `json:"restaurant_id"`
	Status       OrderStatus    `json:"status,omitempty"`
	TotalPrice   string         `json:"total_price,omitempty"`
	Items        []MealQuantity `json:"items,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}
