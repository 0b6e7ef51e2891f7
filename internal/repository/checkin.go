package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/checkfit/checkfit/internal/model"
)

// Common errors for check-in repository operations.
var (
	ErrCheckInNotFound = errors.New("check-in not found")
	// ErrDuplicateCheckIn is returned when the per-day unique index
	// rejects a second check-in for the same user, gym and day.
	ErrDuplicateCheckIn = errors.New("check-in already exists for this day")
)

// CreateCheckIn inserts a new check-in into the database.
// The check_ins_user_gym_day_key unique index makes concurrent duplicate
// inserts lose with ErrDuplicateCheckIn instead of both committing.
func (r *Repository) CreateCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	query := `
		INSERT INTO check_ins (id, user_id, gym_id, validated_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		checkIn.ID,
		checkIn.UserID,
		checkIn.GymID,
		checkIn.ValidatedAt,
		checkIn.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCheckIn
		}
		return fmt.Errorf("failed to create check-in: %w", err)
	}

	return nil
}

// GetCheckInByID retrieves a check-in by its ID.
func (r *Repository) GetCheckInByID(ctx context.Context, id string) (*model.CheckIn, error) {
	query := `
		SELECT id, user_id, gym_id, validated_at, created_at
		FROM check_ins
		WHERE id = $1
	`

	checkIn, err := scanCheckIn(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCheckInNotFound
		}
		return nil, fmt.Errorf("failed to get check-in by ID: %w", err)
	}

	return checkIn, nil
}

// GetCheckInByUserOnDate retrieves the user's check-in on the UTC
// calendar day containing date, if any.
func (r *Repository) GetCheckInByUserOnDate(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error) {
	startOfDay, endOfDay := DayBoundsUTC(date)

	query := `
		SELECT id, user_id, gym_id, validated_at, created_at
		FROM check_ins
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		LIMIT 1
	`

	checkIn, err := scanCheckIn(r.pool.QueryRow(ctx, query, userID, startOfDay, endOfDay))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCheckInNotFound
		}
		return nil, fmt.Errorf("failed to get check-in by user on date: %w", err)
	}

	return checkIn, nil
}

// ListCheckInsByUser retrieves a page of the user's check-ins ordered by
// creation time.
func (r *Repository) ListCheckInsByUser(ctx context.Context, userID string, page int) ([]*model.CheckIn, error) {
	if page < 1 {
		page = 1
	}

	query := `
		SELECT id, user_id, gym_id, validated_at, created_at
		FROM check_ins
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := make([]*model.CheckIn, 0)
	for rows.Next() {
		checkIn, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, checkIn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read check-ins: %w", err)
	}

	return checkIns, nil
}

// CountCheckInsByUser returns the total number of check-ins for a user.
func (r *Repository) CountCheckInsByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT count(*) FROM check_ins WHERE user_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}

	return count, nil
}

// SaveCheckIn persists changes to an existing check-in.
// Only validated_at is mutable after creation.
func (r *Repository) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	query := `
		UPDATE check_ins
		SET validated_at = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, checkIn.ID, checkIn.ValidatedAt)
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrCheckInNotFound
	}

	return nil
}

func scanCheckIn(row pgx.Row) (*model.CheckIn, error) {
	var checkIn model.CheckIn
	err := row.Scan(
		&checkIn.ID,
		&checkIn.UserID,
		&checkIn.GymID,
		&checkIn.ValidatedAt,
		&checkIn.CreatedAt,
	)
	return &checkIn, err
}
