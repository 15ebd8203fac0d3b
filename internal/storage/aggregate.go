package storage

import (
	"context"

	"food-delivery/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// mealLookup resolves a meal id to its current price and name. Inside a
// transaction it is backed by the transaction's own queries, so the
// "all meals exist or nothing is written" guarantee holds at commit time.
type mealLookup func(ctx context.Context, mealID uuid.UUID) (decimal.Decimal, string, error)

// buildOrderLines walks the (meal, quantity) pairs in caller order,
// resolves each meal, fills the order's line items and computes the total.
// The first missing meal aborts the whole build.
func buildOrderLines(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity, lookup mealLookup) error {
	total := decimal.Zero
	order.Items = order.Items[:0]
	for _, pair := range pairs {
		price, mealName, err := lookup(ctx, pair.MealID)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, domain.MealInOrder{
			MealID:   pair.MealID,
			OrderID:  order.ID,
			MealName: mealName,
			Quantity: pair.Quantity,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(pair.Quantity))))
	}
	order.TotalPrice = total
	return nil
}
