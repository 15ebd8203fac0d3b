package tests

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"food-delivery/internal/domain"
	"food-delivery/internal/mocks"
	"food-delivery/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRestaurantService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     *domain.Restaurant
		mockError error
		wantErr   bool
		wantKind  domain.ErrorKind
		skipRepo  bool
	}{
		{
			name:    "valid restaurant",
			input:   &domain.Restaurant{Name: "Pasta House", Email: "pasta@house.io"},
			wantErr: false,
		},
		{
			name:     "empty name",
			input:    &domain.Restaurant{Name: ""},
			wantErr:  true,
			wantKind: domain.KindValidation,
			skipRepo: true,
		},
		{
			name:     "name too long",
			input:    &domain.Restaurant{Name: strings.Repeat("x", 65)},
			wantErr:  true,
			wantKind: domain.KindValidation,
			skipRepo: true,
		},
		{
			// Limits count characters, not bytes: 64 two-byte runes are fine.
			name:    "multi-byte name at the limit",
			input:   &domain.Restaurant{Name: strings.Repeat("é", 64)},
			wantErr: false,
		},
		{
			name:      "duplicate name",
			input:     &domain.Restaurant{Name: "Pasta House"},
			mockError: domain.Conflictf("restaurant with name %q already exists", "Pasta House"),
			wantErr:   true,
			wantKind:  domain.KindConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.RestaurantRepository)
			svc := service.NewRestaurantService(mockRepo, testLogger())

			if !testCase.skipRepo {
				mockRepo.On("CreateRestaurant", mock.Anything, testCase.input).Return(testCase.mockError).Once()
			}

			err := svc.Create(context.Background(), testCase.input)

			if testCase.wantErr {
				require.Error(t, err)
				if testCase.wantKind != "" {
					assert.True(t, domain.IsKind(err, testCase.wantKind))
				}
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, testCase.input.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRestaurantService_Delete(t *testing.T) {
	id := uuid.New()

	mockRepo := new(mocks.RestaurantRepository)
	svc := service.NewRestaurantService(mockRepo, testLogger())

	mockRepo.On("DeleteRestaurant", mock.Anything, id).Return(domain.NotFoundf("restaurant %s not found", id)).Once()

	err := svc.Delete(context.Background(), id)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	mockRepo.AssertExpectations(t)
}

func TestMealService_Create(t *testing.T) {
	restaurantID := uuid.New()
	tests := []struct {
		name     string
		input    *domain.Meal
		wantErr  bool
		skipRepo bool
	}{
		{
			name:    "valid meal",
			input:   &domain.Meal{RestaurantID: restaurantID, Name: "Carbonara", Price: decimal.RequireFromString("12.50")},
			wantErr: false,
		},
		{
			name:     "missing restaurant id",
			input:    &domain.Meal{Name: "Carbonara", Price: decimal.RequireFromString("12.50")},
			wantErr:  true,
			skipRepo: true,
		},
		{
			name:     "negative price",
			input:    &domain.Meal{RestaurantID: restaurantID, Name: "Carbonara", Price: decimal.RequireFromString("-1.00")},
			wantErr:  true,
			skipRepo: true,
		},
		{
			name:     "description too long",
			input:    &domain.Meal{RestaurantID: restaurantID, Name: "Carbonara", Description: strings.Repeat("d", 257)},
			wantErr:  true,
			skipRepo: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.MealRepository)
			svc := service.NewMealService(mockRepo, testLogger())

			if !testCase.skipRepo {
				mockRepo.On("CreateMeal", mock.Anything, testCase.input).Return(nil).Once()
			}

			err := svc.Create(context.Background(), testCase.input)

			if testCase.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, testCase.input.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_CreateValidation(t *testing.T) {
	restaurantID := uuid.New()
	mealID := uuid.New()
	tests := []struct {
		name  string
		order *domain.Order
		pairs []domain.MealQuantity
	}{
		{
			name:  "no restaurant id",
			order: &domain.Order{Status: domain.StatusPending},
			pairs: []domain.MealQuantity{{MealID: mealID, Quantity: 1}},
		},
		{
			name:  "empty meal set",
			order: &domain.Order{RestaurantID: restaurantID, Status: domain.StatusPending},
			pairs: nil,
		},
		{
			name:  "zero quantity",
			order: &domain.Order{RestaurantID: restaurantID, Status: domain.StatusPending},
			pairs: []domain.MealQuantity{{MealID: mealID, Quantity: 0}},
		},
		{
			name:  "negative quantity",
			order: &domain.Order{RestaurantID: restaurantID, Status: domain.StatusPending},
			pairs: []domain.MealQuantity{{MealID: mealID, Quantity: -2}},
		},
		{
			name:  "unknown status",
			order: &domain.Order{RestaurantID: restaurantID, Status: "teleported"},
			pairs: []domain.MealQuantity{{MealID: mealID, Quantity: 1}},
		},
		{
			// A repeated meal id would violate the line item primary key,
			// so it must be rejected before the store is touched.
			name:  "duplicate meal id",
			order: &domain.Order{RestaurantID: restaurantID, Status: domain.StatusPending},
			pairs: []domain.MealQuantity{
				{MealID: mealID, Quantity: 1},
				{MealID: mealID, Quantity: 2},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			svc := service.NewOrderService(mockRepo, nil, nil, nil, testLogger())

			err := svc.Create(context.Background(), testCase.order, testCase.pairs)

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			// Nothing may reach the store on a validation failure.
			mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_Create(t *testing.T) {
	restaurantID := uuid.New()
	pasta := uuid.New()
	pizza := uuid.New()
	pairs := []domain.MealQuantity{
		{MealID: pasta, Quantity: 2},
		{MealID: pizza, Quantity: 1},
	}

	mockRepo := new(mocks.OrderRepository)
	mockCache := new(mocks.OrderStatusCache)
	mockPublisher := new(mocks.OrderEventPublisher)
	mockQR := new(mocks.QRGenerator)
	svc := service.NewOrderService(mockRepo, mockCache, mockPublisher, mockQR, testLogger())

	order := &domain.Order{RestaurantID: restaurantID, Status: domain.StatusPending}

	mockRepo.On("CreateOrder", mock.Anything, order, pairs).Return(nil).Run(func(args mock.Arguments) {
		persisted := args.Get(1).(*domain.Order)
		persisted.TotalPrice = decimal.RequireFromString("33.00")
		persisted.Items = []domain.MealInOrder{
			{MealID: pasta, OrderID: persisted.ID, Quantity: 2},
			{MealID: pizza, OrderID: persisted.ID, Quantity: 1},
		}
	}).Once()
	mockCache.On("SetStatus", mock.Anything, mock.Anything, domain.StatusPending).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).Return(nil).Once()
	mockQR.On("Generate", mock.Anything).Return([]byte("qr"), nil).Once()
	mockRepo.On("SaveOrderQRCode", mock.Anything, mock.Anything, []byte("qr")).Return(nil).Once()

	err := svc.Create(context.Background(), order, pairs)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("33.00")))
	assert.Len(t, order.Items, 2)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
	mockQR.AssertExpectations(t)
}

func TestOrderService_Create_MissingMeal(t *testing.T) {
	unknown := uuid.New()
	order := &domain.Order{RestaurantID: uuid.New(), Status: domain.StatusPending}
	pairs := []domain.MealQuantity{{MealID: unknown, Quantity: 1}}

	mockRepo := new(mocks.OrderRepository)
	mockCache := new(mocks.OrderStatusCache)
	mockPublisher := new(mocks.OrderEventPublisher)
	svc := service.NewOrderService(mockRepo, mockCache, mockPublisher, nil, testLogger())

	mockRepo.On("CreateOrder", mock.Anything, order, pairs).
		Return(domain.NotFoundf("meal %s not found", unknown)).Once()

	err := svc.Create(context.Background(), order, pairs)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), unknown.String())
	// A failed create leaves no side effects behind.
	mockCache.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_Update_Recomputes(t *testing.T) {
	orderID := uuid.New()
	meal := uuid.New()
	order := &domain.Order{ID: orderID, RestaurantID: uuid.New(), Status: domain.StatusConfirmed}
	pairs := []domain.MealQuantity{{MealID: meal, Quantity: 3}}

	mockRepo := new(mocks.OrderRepository)
	mockCache := new(mocks.OrderStatusCache)
	mockPublisher := new(mocks.OrderEventPublisher)
	svc := service.NewOrderService(mockRepo, mockCache, mockPublisher, nil, testLogger())

	mockRepo.On("UpdateOrder", mock.Anything, order, pairs).Return(nil).Run(func(args mock.Arguments) {
		persisted := args.Get(1).(*domain.Order)
		persisted.TotalPrice = decimal.RequireFromString("24.00")
	}).Once()
	mockCache.On("SetStatus", mock.Anything, orderID, domain.StatusConfirmed).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).Return(nil).Once()

	err := svc.Update(context.Background(), order, pairs)

	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("24.00")))
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_TrackStatus(t *testing.T) {
	orderID := uuid.New()

	t.Run("cache hit", func(t *testing.T) {
		mockRepo := new(mocks.OrderRepository)
		mockCache := new(mocks.OrderStatusCache)
		svc := service.NewOrderService(mockRepo, mockCache, nil, nil, testLogger())

		mockCache.On("GetStatus", mock.Anything, orderID).Return(domain.StatusPreparing, true, nil).Once()

		status, err := svc.TrackStatus(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPreparing, status)
		mockRepo.AssertNotCalled(t, "GetOrderStatus", mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls back to store", func(t *testing.T) {
		mockRepo := new(mocks.OrderRepository)
		mockCache := new(mocks.OrderStatusCache)
		svc := service.NewOrderService(mockRepo, mockCache, nil, nil, testLogger())

		mockCache.On("GetStatus", mock.Anything, orderID).Return(domain.OrderStatus(""), false, nil).Once()
		mockRepo.On("GetOrderStatus", mock.Anything, orderID).Return(domain.StatusDelivered, nil).Once()
		mockCache.On("SetStatus", mock.Anything, orderID, domain.StatusDelivered).Return(nil).Once()

		status, err := svc.TrackStatus(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, status)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		mockRepo := new(mocks.OrderRepository)
		mockCache := new(mocks.OrderStatusCache)
		svc := service.NewOrderService(mockRepo, mockCache, nil, nil, testLogger())

		mockCache.On("GetStatus", mock.Anything, orderID).Return(domain.OrderStatus(""), false, nil).Once()
		mockRepo.On("GetOrderStatus", mock.Anything, orderID).
			Return(domain.OrderStatus(""), domain.NotFoundf("order %s not found", orderID)).Once()

		_, err := svc.TrackStatus(context.Background(), orderID)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestOrderService_Delete(t *testing.T) {
	orderID := uuid.New()
	restaurantID := uuid.New()

	mockRepo := new(mocks.OrderRepository)
	mockCache := new(mocks.OrderStatusCache)
	mockPublisher := new(mocks.OrderEventPublisher)
	svc := service.NewOrderService(mockRepo, mockCache, mockPublisher, nil, testLogger())

	mockRepo.On("GetOrder", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, RestaurantID: restaurantID}, nil).Once()
	mockRepo.On("DeleteOrder", mock.Anything, orderID).Return(nil).Once()
	mockCache.On("DropStatus", mock.Anything, orderID).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).Return(nil).Once()

	err := svc.Delete(context.Background(), orderID)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}
