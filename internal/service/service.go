package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"food-delivery/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxNameLen        = 64
	maxPhoneLen       = 15
	maxEmailLen       = 128
	maxDescriptionLen = 256
)

type RestaurantService struct {
	repo RestaurantRepository
	log  *slog.Logger
}

func NewRestaurantService(repo RestaurantRepository, log *slog.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, log: log}
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	if err := validateRestaurant(rest); err != nil {
		return err
	}
	if rest.ID == uuid.Nil {
		rest.ID = uuid.New()
	}
	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return err
	}
	s.log.Info("restaurant created", "restaurant_id", rest.ID)
	return nil
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

func (s *RestaurantService) Update(ctx context.Context, rest *domain.Restaurant) error {
	if err := validateRestaurant(rest); err != nil {
		return err
	}
	if err := s.repo.UpdateRestaurant(ctx, rest); err != nil {
		return err
	}
	s.log.Info("restaurant updated", "restaurant_id", rest.ID)
	return nil
}

func (s *RestaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	s.log.Info("restaurant deleted", "restaurant_id", id)
	return nil
}

func validateRestaurant(rest *domain.Restaurant) error {
	if rest.Name == "" {
		return domain.Validationf("restaurant name is required")
	}
	if utf8.RuneCountInString(rest.Name) > maxNameLen {
		return domain.Validationf("restaurant name must be at most %d characters", maxNameLen)
	}
	if utf8.RuneCountInString(rest.PhoneNumber) > maxPhoneLen {
		return domain.Validationf("phone number must be at most %d characters", maxPhoneLen)
	}
	if utf8.RuneCountInString(rest.Email) > maxEmailLen {
		return domain.Validationf("email must be at most %d characters", maxEmailLen)
	}
	return nil
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)

type MealService struct {
	repo MealRepository
	log  *slog.Logger
}

func NewMealService(repo MealRepository, log *slog.Logger) *MealService {
	return &MealService{repo: repo, log: log}
}

func (s *MealService) Create(ctx context.Context, meal *domain.Meal) error {
	if err := validateMeal(meal); err != nil {
		return err
	}
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	if err := s.repo.CreateMeal(ctx, meal); err != nil {
		return err
	}
	s.log.Info("meal created", "meal_id", meal.ID, "restaurant_id", meal.RestaurantID)
	return nil
}

func (s *MealService) List(ctx context.Context) ([]domain.Meal, error) {
	return s.repo.ListMeals(ctx)
}

func (s *MealService) Get(ctx context.Context, id uuid.UUID) (*domain.Meal, error) {
	return s.repo.GetMeal(ctx, id)
}

func (s *MealService) Update(ctx context.Context, meal *domain.Meal) error {
	if err := validateMeal(meal); err != nil {
		return err
	}
	if err := s.repo.UpdateMeal(ctx, meal); err != nil {
		return err
	}
	s.log.Info("meal updated", "meal_id", meal.ID)
	return nil
}

func (s *MealService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteMeal(ctx, id); err != nil {
		return err
	}
	s.log.Info("meal deleted", "meal_id", id)
	return nil
}

func validateMeal(meal *domain.Meal) error {
	if meal.RestaurantID == uuid.Nil {
		return domain.Validationf("restaurant id is required")
	}
	if meal.Name == "" {
		return domain.Validationf("meal name is required")
	}
	if utf8.RuneCountInString(meal.Name) > maxNameLen {
		return domain.Validationf("meal name must be at most %d characters", maxNameLen)
	}
	if utf8.RuneCountInString(meal.Description) > maxDescriptionLen {
		return domain.Validationf("meal description must be at most %d characters", maxDescriptionLen)
	}
	if meal.Price.IsNegative() {
		return domain.Validationf("meal price must not be negative")
	}
	return nil
}

var _ MealServiceInterface = (*MealService)(nil)

// OrderService turns (meal, quantity) pairs into a priced, persisted order.
type OrderService struct {
	repo      OrderRepository
	cache     OrderStatusCache
	publisher OrderEventPublisher
	qrEncoder QRGenerator
	log       *slog.Logger
}

func NewOrderService(repo OrderRepository, cache OrderStatusCache, publisher OrderEventPublisher, qr QRGenerator, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		qrEncoder: qr,
		log:       log,
	}
}

// Create validates the request, then persists the order with all its line
// items in one transaction. Any missing meal aborts the whole operation
// before anything is written.
func (s *OrderService) Create(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error {
	if err := validateOrderRequest(order, pairs); err != nil {
		return err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.TotalPrice = decimal.Zero

	if err := s.repo.CreateOrder(ctx, order, pairs); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	s.log.Info("order created", "order_id", order.ID, "total_price", order.TotalPrice.String())

	s.afterMutation(ctx, order, domain.EventOrderCreated, pairs)

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.repo.SaveOrderQRCode(ctx, order.ID, qr)
		}
	}
	return nil
}

// Update replaces the line item set in full and recomputes the total from
// the replacement set.
func (s *OrderService) Update(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error {
	if err := validateOrderRequest(order, pairs); err != nil {
		return err
	}
	if err := s.repo.UpdateOrder(ctx, order, pairs); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	s.log.Info("order updated", "order_id", order.ID, "total_price", order.TotalPrice.String())

	s.afterMutation(ctx, order, domain.EventOrderUpdated, pairs)
	return nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// TrackStatus answers from the cache when it can and falls back to the
// database otherwise.
func (s *OrderService) TrackStatus(ctx context.Context, id uuid.UUID) (domain.OrderStatus, error) {
	if s.cache != nil {
		if status, ok, err := s.cache.GetStatus(ctx, id); err == nil && ok {
			return status, nil
		}
	}

	status, err := s.repo.GetOrderStatus(ctx, id)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		_ = s.cache.SetStatus(ctx, id, status)
	}
	return status, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", "order_id", id)

	if s.cache != nil {
		_ = s.cache.DropStatus(ctx, id)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         domain.EventOrderDeleted,
			OrderID:      id,
			RestaurantID: order.RestaurantID,
			Timestamp:    time.Now().UTC(),
		})
	}
	return nil
}

func (s *OrderService) GetQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	qr, err := s.repo.GetOrderQRCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(id); err == nil {
			_ = s.repo.SaveOrderQRCode(ctx, id, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) QRLink(id uuid.UUID) string {
	return fmt.Sprintf("/orders/%s/qrcode", id)
}

// afterMutation covers the best-effort side channels. Neither the cache nor
// the event stream may fail a committed order.
func (s *OrderService) afterMutation(ctx context.Context, order *domain.Order, eventType string, pairs []domain.MealQuantity) {
	if s.cache != nil {
		_ = s.cache.SetStatus(ctx, order.ID, order.Status)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         eventType,
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Status:       order.Status,
			TotalPrice:   order.TotalPrice.String(),
			Items:        pairs,
			Timestamp:    time.Now().UTC(),
		})
	}
}

func validateOrderRequest(order *domain.Order, pairs []domain.MealQuantity) error {
	if order.RestaurantID == uuid.Nil {
		return domain.Validationf("restaurant id is required")
	}
	if !order.Status.Valid() {
		return domain.Validationf("invalid order status %q", string(order.Status))
	}
	if len(pairs) == 0 {
		return domain.Validationf("at least one meal must be included in the order")
	}
	seen := make(map[uuid.UUID]struct{}, len(pairs))
	for _, pair := range pairs {
		if pair.Quantity <= 0 {
			return domain.Validationf("quantity for meal %s must be positive", pair.MealID)
		}
		if _, dup := seen[pair.MealID]; dup {
			return domain.Validationf("meal %s is listed more than once", pair.MealID)
		}
		seen[pair.MealID] = struct{}{}
	}
	return nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
