package postgres

import (
	"context"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FoodItemRepository struct {
	pool *pgxpool.Pool
}

func NewFoodItemRepository(pool *pgxpool.Pool) *FoodItemRepository {
	return &FoodItemRepository{pool: pool}
}

// BulkCreate uses CopyFrom; item snapshots are the largest table by far.
func (r *FoodItemRepository) BulkCreate(ctx context.Context, items []*models.FoodItem) error {
	rows := make([][]interface{}, len(items))
	for i, item := range items {
		rows[i] = []interface{}{
			item.ID,
			item.RestaurantID,
			item.Name,
			item.FoodType,
			item.OriginalPrice,
			item.Quantity,
			item.Expiry,
			item.CreatedAt,
			item.UpdatedAt,
		}
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"food_items"},
		[]string{"id", "restaurant_id", "name", "food_type", "original_price", "quantity", "expiry", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (r *FoodItemRepository) Create(ctx context.Context, item *models.FoodItem) error {
	query := `
        INSERT INTO food_items (
            id, restaurant_id, name, food_type, original_price,
            quantity, expiry, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.FoodType,
		item.OriginalPrice,
		item.Quantity,
		item.Expiry,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

func (r *FoodItemRepository) GetAll(ctx context.Context) ([]*models.FoodItem, error) {
	query := `
        SELECT id, restaurant_id, name, food_type, original_price,
               quantity, expiry, created_at, updated_at
        FROM food_items
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFoodItems(rows)
}

func (r *FoodItemRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.FoodItem, error) {
	query := `
        SELECT id, restaurant_id, name, food_type, original_price,
               quantity, expiry, created_at, updated_at
        FROM food_items
        WHERE restaurant_id = $1
    `
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFoodItems(rows)
}

func scanFoodItems(rows pgx.Rows) ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	for rows.Next() {
		item := &models.FoodItem{}
		err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.FoodType,
			&item.OriginalPrice,
			&item.Quantity,
			&item.Expiry,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *FoodItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM food_items").Scan(&count)
	return count, err
}

func (r *FoodItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE food_items CASCADE")
	return err
}
