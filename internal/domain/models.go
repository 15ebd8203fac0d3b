package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Meals       []Meal    `json:"meals,omitempty"`
}

type Meal struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	Restaurant   *Restaurant     `json:"restaurant,omitempty"`
	InOrders     []MealInOrder   `json:"in_orders,omitempty"`
}

type Order struct {
	ID             uuid.UUID       `json:"id"`
	RestaurantID   uuid.UUID       `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         OrderStatus     `json:"status"`
	QRCode         string          `json:"qr_code,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []MealInOrder   `json:"items"`
}

// MealInOrder links one order to one meal with a quantity.
type MealInOrder struct {
	MealID   uuid.UUID `json:"meal_id"`
	OrderID  uuid.UUID `json:"order_id"`
	MealName string    `json:"meal_name,omitempty"`
	Quantity int       `json:"quantity"`
}

// MealQuantity is one (meal, quantity) pair of an order request.
// Pairs are processed in the order the caller supplied them.
type MealQuantity struct {
	MealID   uuid.UUID `json:"meal_id"`
	Quantity int       `json:"quantity"`
}
