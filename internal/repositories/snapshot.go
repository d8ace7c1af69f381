package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/campuskitchen/surplusmart/internal/marketplace"
	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/campuskitchen/surplusmart/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
)

// NewPool opens a pgx connection pool from the database config.
func NewPool(ctx context.Context, cfg models.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return pool, nil
}

// Snapshotter persists the full in-memory marketplace state to Postgres.
// The in-memory structures stay authoritative; the snapshot is for
// analytics and restart recovery.
type Snapshotter struct {
	Halls  DiningHallRepository
	Items  FoodItemRepository
	Users  UserRepository
	Orders OrderRepository
}

func NewPostgresSnapshotter(pool *pgxpool.Pool) *Snapshotter {
	return &Snapshotter{
		Halls:  postgres.NewDiningHallRepository(pool),
		Items:  postgres.NewFoodItemRepository(pool),
		Users:  postgres.NewUserRepository(pool),
		Orders: postgres.NewOrderRepository(pool),
	}
}

// Snapshot truncates and rewrites every table from the current marketplace
// state.
func (s *Snapshotter) Snapshot(ctx context.Context, market *marketplace.Marketplace) error {
	halls := market.Inventory.Halls()
	var items []*models.FoodItem
	for _, hall := range halls {
		items = append(items, hall.Inventory...)
	}
	users := market.Profiles.All()
	orders := market.Ledger.Orders()

	total := len(halls) + len(items) + len(users) + len(orders)
	bar := progressbar.Default(int64(total), "persisting snapshot")

	if err := s.Halls.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing dining_halls: %w", err)
	}
	if err := s.Halls.BulkCreate(ctx, halls); err != nil {
		return fmt.Errorf("persisting dining halls: %w", err)
	}
	_ = bar.Add(len(halls))

	if err := s.Items.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing food_items: %w", err)
	}
	if err := s.Items.BulkCreate(ctx, items); err != nil {
		return fmt.Errorf("persisting food items: %w", err)
	}
	_ = bar.Add(len(items))

	if err := s.Users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing users: %w", err)
	}
	if err := s.Users.BulkCreate(ctx, users); err != nil {
		return fmt.Errorf("persisting users: %w", err)
	}
	_ = bar.Add(len(users))

	orderPtrs := make([]*models.Order, len(orders))
	for i := range orders {
		orderPtrs[i] = &orders[i]
	}
	if err := s.Orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing orders: %w", err)
	}
	if err := s.Orders.BulkCreate(ctx, orderPtrs); err != nil {
		return fmt.Errorf("persisting orders: %w", err)
	}
	_ = bar.Add(len(orders))

	log.Printf("Snapshot complete: %d halls, %d items, %d users, %d orders",
		len(halls), len(items), len(users), len(orders))
	return nil
}
