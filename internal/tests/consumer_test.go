package tests

import (
	"context"
	"testing"
	"time"

	"food-delivery/internal/analytics"
	"food-delivery/internal/domain"
	"food-delivery/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func TestConsumerProcess(t *testing.T) {
	created := domain.OrderEvent{
		Type:         domain.EventOrderCreated,
		OrderID:      uuid.New(),
		RestaurantID: uuid.New(),
		Status:       domain.StatusPending,
		TotalPrice:   "33.00",
		Items:        []domain.MealQuantity{{MealID: uuid.New(), Quantity: 2}},
		Timestamp:    time.Now().UTC(),
	}

	t.Run("order_created is recorded", func(t *testing.T) {
		mockStore := new(mocks.AnalyticsStore)
		consumer := analytics.NewConsumer(nil, mockStore, testLogger())

		mockStore.On("RecordOrder", mock.Anything, created).Return(nil).Once()

		consumer.Process(context.Background(), created)
		mockStore.AssertExpectations(t)
	})

	t.Run("other event types are skipped", func(t *testing.T) {
		mockStore := new(mocks.AnalyticsStore)
		consumer := analytics.NewConsumer(nil, mockStore, testLogger())

		deleted := created
		deleted.Type = domain.EventOrderDeleted
		consumer.Process(context.Background(), deleted)

		mockStore.AssertNotCalled(t, "RecordOrder", mock.Anything, mock.Anything)
	})
}
