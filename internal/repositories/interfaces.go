package repositories

import (
	"context"

	"github.com/campuskitchen/surplusmart/internal/models"
)

type DiningHallRepository interface {
	BulkCreate(ctx context.Context, halls []*models.DiningHall) error
	Create(ctx context.Context, hall *models.DiningHall) error
	GetAll(ctx context.Context) (map[string]*models.DiningHall, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type FoodItemRepository interface {
	BulkCreate(ctx context.Context, items []*models.FoodItem) error
	Create(ctx context.Context, item *models.FoodItem) error
	GetAll(ctx context.Context) ([]*models.FoodItem, error)
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.FoodItem, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type UserRepository interface {
	BulkCreate(ctx context.Context, users []*models.UserProfile) error
	Create(ctx context.Context, user *models.UserProfile) error
	GetAll(ctx context.Context) ([]*models.UserProfile, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []*models.Order) error
	Create(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]*models.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
