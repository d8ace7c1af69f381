package postgres

import (
	"context"
	"encoding/json"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) BulkCreate(ctx context.Context, users []*models.UserProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO users (
            id, name, location, preferences, preference_scores,
            interaction_history, joined_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for _, user := range users {
		prefs, scores, history, err := marshalUserColumns(user)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, stmt,
			user.ID,
			user.Name,
			user.Location,
			prefs,
			scores,
			history,
			user.JoinedAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	prefs, scores, history, err := marshalUserColumns(user)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO users (
            id, name, location, preferences, preference_scores,
            interaction_history, joined_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err = r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Location,
		prefs,
		scores,
		history,
		user.JoinedAt,
	)
	return err
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*models.UserProfile, error) {
	query := `
        SELECT id, name, location, preferences, preference_scores,
               interaction_history, joined_at
        FROM users
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.UserProfile
	for rows.Next() {
		var prefs, scores, history []byte
		user := &models.UserProfile{}
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Location,
			&prefs,
			&scores,
			&history,
			&user.JoinedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scores, &user.PreferenceScore); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(history, &user.InteractionHistory); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE users CASCADE")
	return err
}

// jsonb columns for the nested profile structures
func marshalUserColumns(user *models.UserProfile) (prefs, scores, history []byte, err error) {
	if prefs, err = json.Marshal(user.Preferences); err != nil {
		return nil, nil, nil, err
	}
	if scores, err = json.Marshal(user.PreferenceScore); err != nil {
		return nil, nil, nil, err
	}
	if history, err = json.Marshal(user.InteractionHistory); err != nil {
		return nil, nil, nil, err
	}
	return prefs, scores, history, nil
}
