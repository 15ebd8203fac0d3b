package service

import (
	"context"

	"food-delivery/internal/domain"

	"github.com/google/uuid"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
}

type MealRepository interface {
	CreateMeal(ctx context.Context, meal *domain.Meal) error
	ListMeals(ctx context.Context) ([]domain.Meal, error)
	GetMeal(ctx context.Context, id uuid.UUID) (*domain.Meal, error)
	UpdateMeal(ctx context.Context, meal *domain.Meal) error
	DeleteMeal(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error
	UpdateOrder(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderStatus(ctx context.Context, id uuid.UUID) (domain.OrderStatus, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	SaveOrderQRCode(ctx context.Context, orderID uuid.UUID, qr []byte) error
	GetOrderQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error)
}

type OrderStatusCache interface {
	GetStatus(ctx context.Context, orderID uuid.UUID) (domain.OrderStatus, bool, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
	DropStatus(ctx context.Context, orderID uuid.UUID) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, rest *domain.Restaurant) error
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	Update(ctx context.Context, rest *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MealServiceInterface interface {
	Create(ctx context.Context, meal *domain.Meal) error
	List(ctx context.Context) ([]domain.Meal, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Meal, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error
	Update(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	TrackStatus(ctx context.Context, id uuid.UUID) (domain.OrderStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
	QRLink(id uuid.UUID) string
}
