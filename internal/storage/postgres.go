package storage

import (
	"context"
	"database/sql"
	"errors"

	"food-delivery/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Postgres error codes we translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM restaurants WHERE name = $1)", rest.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflictf("restaurant with name %q already exists", rest.Name)
	}

	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO restaurants (id, name, phone_number, email, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		rest.ID, rest.Name, rest.PhoneNumber, rest.Email, rest.Description,
	).Scan(&rest.CreatedAt)
	if isPgError(err, pgUniqueViolation) {
		// Unique index backstop covers email and concurrent name races.
		return domain.Conflictf("restaurant with the same name or email already exists")
	}
	return err
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(phone_number, ''), COALESCE(email, ''), COALESCE(description, ''), created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.PhoneNumber, &rest.Email, &rest.Description, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mealsByRestaurant, err := r.mealsGroupedByRestaurant(ctx)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		restaurants[i].Meals = mealsByRestaurant[restaurants[i].ID]
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(phone_number, ''), COALESCE(email, ''), COALESCE(description, ''), created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.PhoneNumber, &rest.Email, &rest.Description, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("restaurant %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	meals, err := r.listMealsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	rest.Meals = meals
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE restaurants
		SET name = $1, phone_number = $2, email = $3, description = $4
		WHERE id = $5
		RETURNING created_at`,
		rest.Name, rest.PhoneNumber, rest.Email, rest.Description, rest.ID,
	).Scan(&rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("restaurant %s not found", rest.ID)
	}
	if isPgError(err, pgUniqueViolation) {
		return domain.Conflictf("restaurant with the same name or email already exists")
	}
	return err
}

// DeleteRestaurant removes the restaurant; its meals and orders go with it
// through the schema's ON DELETE CASCADE.
func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
	if err != nil {
		return err
	}
	return notFoundIfNoRows(result, "restaurant %s not found", id)
}

func (r *PostgresRepository) CreateMeal(ctx context.Context, meal *domain.Meal) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO meals (id, restaurant_id, name, price, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		meal.ID, meal.RestaurantID, meal.Name, meal.Price, meal.Description,
	).Scan(&meal.CreatedAt)
	if isPgError(err, pgForeignKeyViolation) {
		return domain.NotFoundf("restaurant %s not found", meal.RestaurantID)
	}
	return err
}

func (r *PostgresRepository) ListMeals(ctx context.Context) ([]domain.Meal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.restaurant_id, m.name, m.price, COALESCE(m.description, ''), m.created_at,
		       r.name, COALESCE(r.phone_number, ''), COALESCE(r.email, ''), COALESCE(r.description, ''), r.created_at
		FROM meals m
		JOIN restaurants r ON m.restaurant_id = r.id
		ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []domain.Meal
	for rows.Next() {
		meal, err := scanMealWithRestaurant(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *meal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range meals {
		lines, err := r.linesOfMeal(ctx, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].InOrders = lines
	}
	return meals, nil
}

func (r *PostgresRepository) GetMeal(ctx context.Context, id uuid.UUID) (*domain.Meal, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT m.id, m.restaurant_id, m.name, m.price, COALESCE(m.description, ''), m.created_at,
		       r.name, COALESCE(r.phone_number, ''), COALESCE(r.email, ''), COALESCE(r.description, ''), r.created_at
		FROM meals m
		JOIN restaurants r ON m.restaurant_id = r.id
		WHERE m.id = $1`, id)

	meal, err := scanMealWithRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("meal %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.linesOfMeal(ctx, meal.ID)
	if err != nil {
		return nil, err
	}
	meal.InOrders = lines
	return meal, nil
}

func (r *PostgresRepository) UpdateMeal(ctx context.Context, meal *domain.Meal) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE meals
		SET name = $1, description = $2, price = $3, restaurant_id = $4
		WHERE id = $5
		RETURNING created_at`,
		meal.Name, meal.Description, meal.Price, meal.RestaurantID, meal.ID,
	).Scan(&meal.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("meal %s not found", meal.ID)
	}
	if isPgError(err, pgForeignKeyViolation) {
		return domain.NotFoundf("restaurant %s not found", meal.RestaurantID)
	}
	return err
}

// DeleteMeal removes the meal; line items referencing it are cascaded away,
// sibling orders stay.
func (r *PostgresRepository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM meals WHERE id = $1", id)
	if err != nil {
		return err
	}
	return notFoundIfNoRows(result, "meal %s not found", id)
}

// CreateOrder persists the order and its line items as one transaction.
// Meals are looked up inside the same transaction, so either every
// referenced meal exists at commit time or nothing is written.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := buildOrderLines(ctx, order, pairs, txMealLookup(tx)); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, restaurant_id, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		order.ID, order.RestaurantID, order.TotalPrice, order.Status,
	).Scan(&order.CreatedAt)
	if isPgError(err, pgForeignKeyViolation) {
		return domain.NotFoundf("restaurant %s not found", order.RestaurantID)
	}
	if err != nil {
		return err
	}

	if err := insertOrderLines(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateOrder replaces the order's line item set in full and recomputes the
// total from the replacement set, in one transaction.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, order *domain.Order, pairs []domain.MealQuantity) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)", order.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.NotFoundf("order %s not found", order.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_meals WHERE order_id = $1", order.ID); err != nil {
		return err
	}

	if err := buildOrderLines(ctx, order, pairs, txMealLookup(tx)); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET restaurant_id = $1, total_price = $2, status = $3
		WHERE id = $4
		RETURNING created_at`,
		order.RestaurantID, order.TotalPrice, order.Status, order.ID,
	).Scan(&order.CreatedAt)
	if isPgError(err, pgForeignKeyViolation) {
		return domain.NotFoundf("restaurant %s not found", order.RestaurantID)
	}
	if err != nil {
		return err
	}

	if err := insertOrderLines(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.restaurant_id, r.name, o.total_price, o.status, o.created_at
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.RestaurantName,
			&order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.linesOfOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT o.id, o.restaurant_id, r.name, o.total_price, o.status, o.created_at
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE o.id = $1`, id).
		Scan(&order.ID, &order.RestaurantID, &order.RestaurantName,
			&order.TotalPrice, &order.Status, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("order %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.linesOfOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) GetOrderStatus(ctx context.Context, id uuid.UUID) (domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := r.DB.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NotFoundf("order %s not found", id)
	}
	return status, err
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return notFoundIfNoRows(result, "order %s not found", id)
}

func (r *PostgresRepository) SaveOrderQRCode(ctx context.Context, orderID uuid.UUID, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetOrderQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("order %s not found", orderID)
	}
	return qr, err
}

func (r *PostgresRepository) listMealsOf(ctx context.Context, restaurantID uuid.UUID) ([]domain.Meal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, price, COALESCE(description, ''), created_at
		FROM meals
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMeals(rows)
}

func (r *PostgresRepository) mealsGroupedByRestaurant(ctx context.Context) (map[uuid.UUID][]domain.Meal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, price, COALESCE(description, ''), created_at
		FROM meals
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals, err := collectMeals(rows)
	if err != nil {
		return nil, err
	}
	grouped := make(map[uuid.UUID][]domain.Meal)
	for _, meal := range meals {
		grouped[meal.RestaurantID] = append(grouped[meal.RestaurantID], meal)
	}
	return grouped, nil
}

func (r *PostgresRepository) linesOfOrder(ctx context.Context, orderID uuid.UUID) ([]domain.MealInOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT om.meal_id, om.order_id, m.name, om.quantity
		FROM order_meals om
		JOIN meals m ON om.meal_id = m.id
		WHERE om.order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLines(rows)
}

func (r *PostgresRepository) linesOfMeal(ctx context.Context, mealID uuid.UUID) ([]domain.MealInOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT om.meal_id, om.order_id, m.name, om.quantity
		FROM order_meals om
		JOIN meals m ON om.meal_id = m.id
		WHERE om.meal_id = $1`, mealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLines(rows)
}

// txMealLookup resolves meals through the open transaction so a meal
// deleted by a concurrent request fails the whole build, not just a line.
func txMealLookup(tx *sql.Tx) mealLookup {
	return func(ctx context.Context, mealID uuid.UUID) (decimal.Decimal, string, error) {
		var price decimal.Decimal
		var name string
		err := tx.QueryRowContext(ctx,
			"SELECT price, name FROM meals WHERE id = $1", mealID).Scan(&price, &name)
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, "", domain.NotFoundf("meal %s not found", mealID)
		}
		return price, name, err
	}
}

func insertOrderLines(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, items []domain.MealInOrder) error {
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_meals (meal_id, order_id, quantity)
			VALUES ($1, $2, $3)`,
			item.MealID, orderID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMealWithRestaurant(row rowScanner) (*domain.Meal, error) {
	var meal domain.Meal
	var rest domain.Restaurant
	err := row.Scan(&meal.ID, &meal.RestaurantID, &meal.Name, &meal.Price, &meal.Description, &meal.CreatedAt,
		&rest.Name, &rest.PhoneNumber, &rest.Email, &rest.Description, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	rest.ID = meal.RestaurantID
	meal.Restaurant = &rest
	return &meal, nil
}

func collectMeals(rows *sql.Rows) ([]domain.Meal, error) {
	var meals []domain.Meal
	for rows.Next() {
		var meal domain.Meal
		if err := rows.Scan(&meal.ID, &meal.RestaurantID, &meal.Name, &meal.Price, &meal.Description, &meal.CreatedAt); err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

func collectLines(rows *sql.Rows) ([]domain.MealInOrder, error) {
	var items []domain.MealInOrder
	for rows.Next() {
		var item domain.MealInOrder
		if err := rows.Scan(&item.MealID, &item.OrderID, &item.MealName, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func notFoundIfNoRows(result sql.Result, format string, args ...any) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf(format, args...)
	}
	return nil
}

func isPgError(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
