package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository"
)

// CheckIns is an in-memory implementation of repository.CheckIns.
type CheckIns struct {
	mu       sync.RWMutex
	checkIns []*model.CheckIn
}

// NewCheckIns creates an empty in-memory check-ins repository.
func NewCheckIns() *CheckIns {
	return &CheckIns{checkIns: make([]*model.CheckIn, 0)}
}

// CreateCheckIn stores a check-in, rejecting a second one for the same
// user, gym and UTC calendar day like the database unique index does.
func (r *CheckIns) CreateCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	startOfDay, endOfDay := repository.DayBoundsUTC(checkIn.CreatedAt)
	for _, existing := range r.checkIns {
		if existing.UserID == checkIn.UserID &&
			existing.GymID == checkIn.GymID &&
			inRange(existing.CreatedAt, startOfDay, endOfDay) {
			return repository.ErrDuplicateCheckIn
		}
	}

	copied := *checkIn
	r.checkIns = append(r.checkIns, &copied)
	return nil
}

// GetCheckInByID retrieves a check-in by ID.
func (r *CheckIns) GetCheckInByID(ctx context.Context, id string) (*model.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, checkIn := range r.checkIns {
		if checkIn.ID == id {
			copied := *checkIn
			return &copied, nil
		}
	}

	return nil, repository.ErrCheckInNotFound
}

// GetCheckInByUserOnDate retrieves the user's check-in on the UTC
// calendar day containing date, if any.
func (r *CheckIns) GetCheckInByUserOnDate(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	startOfDay, endOfDay := repository.DayBoundsUTC(date)
	for _, checkIn := range r.checkIns {
		if checkIn.UserID == userID && inRange(checkIn.CreatedAt, startOfDay, endOfDay) {
			copied := *checkIn
			return &copied, nil
		}
	}

	return nil, repository.ErrCheckInNotFound
}

// ListCheckInsByUser returns a page of the user's check-ins ordered by
// creation time.
func (r *CheckIns) ListCheckInsByUser(ctx context.Context, userID string, page int) ([]*model.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}

	mine := make([]*model.CheckIn, 0)
	for _, checkIn := range r.checkIns {
		if checkIn.UserID == userID {
			copied := *checkIn
			mine = append(mine, &copied)
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt.Before(mine[j].CreatedAt)
	})

	start := (page - 1) * repository.PageSize
	if start >= len(mine) {
		return []*model.CheckIn{}, nil
	}

	end := start + repository.PageSize
	if end > len(mine) {
		end = len(mine)
	}

	return mine[start:end], nil
}

// CountCheckInsByUser returns the total number of check-ins for a user.
func (r *CheckIns) CountCheckInsByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, checkIn := range r.checkIns {
		if checkIn.UserID == userID {
			count++
		}
	}

	return count, nil
}

// SaveCheckIn persists changes to an existing check-in.
func (r *CheckIns) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.checkIns {
		if existing.ID == checkIn.ID {
			copied := *checkIn
			r.checkIns[i] = &copied
			return nil
		}
	}

	return repository.ErrCheckInNotFound
}

func inRange(t, start, end time.Time) bool {
	utc := t.UTC()
	return !utc.Before(start) && utc.Before(end)
}
