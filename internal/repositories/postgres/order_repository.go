package postgres

import (
	"context"
	"encoding/json"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO orders (
            id, user_id, order_type, items, total_cost, status,
            impact_message, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	for _, order := range orders {
		items, err := json.Marshal(order.Items)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, stmt,
			order.ID,
			order.UserID,
			order.Type,
			items,
			order.Cost,
			order.Status,
			order.ImpactMessage,
			order.Timestamp,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO orders (
            id, user_id, order_type, items, total_cost, status,
            impact_message, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.Type,
		items,
		order.Cost,
		order.Status,
		order.ImpactMessage,
		order.Timestamp,
	)
	return err
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	query := `
        SELECT id, user_id, order_type, items, total_cost, status,
               impact_message, created_at
        FROM orders
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *OrderRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	query := `
        SELECT id, user_id, order_type, items, total_cost, status,
               impact_message, created_at
        FROM orders
        WHERE user_id = $1
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		var items []byte
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Type,
			&items,
			&order.Cost,
			&order.Status,
			&order.ImpactMessage,
			&order.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE orders CASCADE")
	return err
}
