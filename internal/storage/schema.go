package storage

import "fmt"

// EnsureSchema creates the tables on startup. Statements are idempotent so
// restarts against an already-provisioned database are harmless.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			name VARCHAR(64) NOT NULL UNIQUE,
			phone_number VARCHAR(15),
			email VARCHAR(128) UNIQUE,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS meals (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(64) NOT NULL,
			price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			description VARCHAR(256),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			total_price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (total_price >= 0),
			status VARCHAR(20) NOT NULL,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_meals (
			meal_id UUID NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			quantity INT NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (meal_id, order_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meals_restaurant ON meals(restaurant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
