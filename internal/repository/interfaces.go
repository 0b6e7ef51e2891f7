package repository

import (
	"context"
	"time"

	"github.com/checkfit/checkfit/internal/model"
)

// Users is the persistence contract for user records.
// Satisfied by *Repository (PostgreSQL) and inmem.Users (tests).
type Users interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Gyms is the persistence contract for gym records.
type Gyms interface {
	CreateGym(ctx context.Context, gym *model.Gym) error
	GetGymByID(ctx context.Context, id string) (*model.Gym, error)
	SearchGyms(ctx context.Context, query string, page int) ([]*model.Gym, error)
	GetNearbyGyms(ctx context.Context, latitude, longitude, radiusKm float64) ([]*model.Gym, error)
}

// CheckIns is the persistence contract for check-in records.
// CreateCheckIn must enforce the one-check-in-per-day invariant at the
// storage level and return ErrDuplicateCheckIn on conflict, so concurrent
// duplicate requests cannot both succeed.
type CheckIns interface {
	CreateCheckIn(ctx context.Context, checkIn *model.CheckIn) error
	GetCheckInByID(ctx context.Context, id string) (*model.CheckIn, error)
	GetCheckInByUserOnDate(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error)
	ListCheckInsByUser(ctx context.Context, userID string, page int) ([]*model.CheckIn, error)
	CountCheckInsByUser(ctx context.Context, userID string) (int64, error)
	SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error
}

// DayBoundsUTC returns the UTC start (inclusive) and end (exclusive) of
// the calendar day containing t. Both implementations use it so the
// daily-limit check compares the same day window everywhere.
func DayBoundsUTC(t time.Time) (time.Time, time.Time) {
	utc := t.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
