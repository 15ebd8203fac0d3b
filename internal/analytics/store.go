package analytics

import (
	"context"
	"strconv"
	"time"

	"food-delivery/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Store keeps order popularity counters in Redis sorted sets: a rolling
// daily set of meal order counts per restaurant and an all-time revenue
// ranking across restaurants.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) RecordOrder(ctx context.Context, event domain.OrderEvent) error {
	today := time.Now().Format("2006-01-02")
	dailyKey := "analytics:daily:" + today + ":" + event.RestaurantID.String()
	for _, item := range event.Items {
		if err := s.rdb.ZIncrBy(ctx, dailyKey, float64(item.Quantity), item.MealID.String()).Err(); err != nil {
			return err
		}
	}
	s.rdb.Expire(ctx, dailyKey, 7*24*time.Hour)

	if total, err := strconv.ParseFloat(event.TotalPrice, 64); err == nil {
		s.rdb.ZIncrBy(ctx, "analytics:revenue", total, event.RestaurantID.String())
	}
	return nil
}
