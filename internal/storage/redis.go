package storage

import (
	"context"
	"time"

	"food-delivery/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatusCache keeps the current order status in Redis so tracking requests
// can skip the database on the hot path.
type StatusCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	return &StatusCache{Client: client, TTL: ttl}
}

func (c *StatusCache) statusKey(orderID uuid.UUID) string {
	return "order:status:" + orderID.String()
}

func (c *StatusCache) GetStatus(ctx context.Context, orderID uuid.UUID) (domain.OrderStatus, bool, error) {
	val, err := c.Client.Get(ctx, c.statusKey(orderID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.OrderStatus(val), true, nil
}

func (c *StatusCache) SetStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	return c.Client.Set(ctx, c.statusKey(orderID), string(status), c.TTL).Err()
}

func (c *StatusCache) DropStatus(ctx context.Context, orderID uuid.UUID) error {
	return c.Client.Del(ctx, c.statusKey(orderID)).Err()
}
