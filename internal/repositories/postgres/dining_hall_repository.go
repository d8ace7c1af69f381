package postgres

import (
	"context"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DiningHallRepository struct {
	pool *pgxpool.Pool
}

func NewDiningHallRepository(pool *pgxpool.Pool) *DiningHallRepository {
	return &DiningHallRepository{pool: pool}
}

func (r *DiningHallRepository) BulkCreate(ctx context.Context, halls []*models.DiningHall) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO dining_halls (id, name, location, cuisine_type)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            location = EXCLUDED.location,
            cuisine_type = EXCLUDED.cuisine_type
    `
	for _, hall := range halls {
		_, err = tx.Exec(ctx, stmt,
			hall.ID,
			hall.Name,
			hall.Location,
			hall.CuisineType,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *DiningHallRepository) Create(ctx context.Context, hall *models.DiningHall) error {
	query := `
        INSERT INTO dining_halls (id, name, location, cuisine_type)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.pool.Exec(ctx, query, hall.ID, hall.Name, hall.Location, hall.CuisineType)
	return err
}

func (r *DiningHallRepository) GetAll(ctx context.Context) (map[string]*models.DiningHall, error) {
	query := `SELECT id, name, location, cuisine_type FROM dining_halls`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make(map[string]*models.DiningHall)
	for rows.Next() {
		hall := &models.DiningHall{}
		if err := rows.Scan(&hall.ID, &hall.Name, &hall.Location, &hall.CuisineType); err != nil {
			return nil, err
		}
		halls[hall.ID] = hall
	}
	return halls, rows.Err()
}

func (r *DiningHallRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM dining_halls").Scan(&count)
	return count, err
}

func (r *DiningHallRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE dining_halls CASCADE")
	return err
}
