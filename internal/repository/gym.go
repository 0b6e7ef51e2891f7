package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/checkfit/checkfit/internal/model"
)

// ErrGymNotFound is returned when a gym does not exist.
var ErrGymNotFound = errors.New("gym not found")

// CreateGym inserts a new gym into the database.
func (r *Repository) CreateGym(ctx context.Context, gym *model.Gym) error {
	query := `
		INSERT INTO gyms (id, title, description, phone, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		gym.ID,
		gym.Title,
		gym.Description,
		gym.Phone,
		gym.Latitude,
		gym.Longitude,
		gym.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create gym: %w", err)
	}

	return nil
}

// GetGymByID retrieves a gym by its ID.
func (r *Repository) GetGymByID(ctx context.Context, id string) (*model.Gym, error) {
	query := `
		SELECT id, title, description, phone, latitude, longitude, created_at
		FROM gyms
		WHERE id = $1
	`

	gym, err := scanGym(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, fmt.Errorf("failed to get gym by ID: %w", err)
	}

	return gym, nil
}

// SearchGyms retrieves a page of gyms whose title matches the query,
// ordered by creation time.
func (r *Repository) SearchGyms(ctx context.Context, query string, page int) ([]*model.Gym, error) {
	if page < 1 {
		page = 1
	}

	sql := `
		SELECT id, title, description, phone, latitude, longitude, created_at
		FROM gyms
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, sql, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search gyms: %w", err)
	}
	defer rows.Close()

	return collectGyms(rows)
}

// GetNearbyGyms retrieves gyms within radiusKm of the given coordinates.
// The great-circle distance is computed in SQL so the filter runs in the
// database rather than scanning rows client-side. Floating-point error can
// push the acos argument just past ±1 for identical coordinates, so it is
// clamped to the valid range.
func (r *Repository) GetNearbyGyms(ctx context.Context, latitude, longitude, radiusKm float64) ([]*model.Gym, error) {
	sql := `
		SELECT id, title, description, phone, latitude, longitude, created_at
		FROM gyms
		WHERE (6371 * acos(LEAST(1, GREATEST(-1,
			cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2))
			+ sin(radians($1)) * sin(radians(latitude))
		)))) <= $3
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, sql, latitude, longitude, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby gyms: %w", err)
	}
	defer rows.Close()

	return collectGyms(rows)
}

func scanGym(row pgx.Row) (*model.Gym, error) {
	var gym model.Gym
	err := row.Scan(
		&gym.ID,
		&gym.Title,
		&gym.Description,
		&gym.Phone,
		&gym.Latitude,
		&gym.Longitude,
		&gym.CreatedAt,
	)
	return &gym, err
}

func collectGyms(rows pgx.Rows) ([]*model.Gym, error) {
	gyms := make([]*model.Gym, 0)
	for rows.Next() {
		gym, err := scanGym(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gym: %w", err)
		}
		gyms = append(gyms, gym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gyms: %w", err)
	}
	return gyms, nil
}
