package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/checkfit/checkfit/internal/geo"
	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository"
)

// Gyms is an in-memory implementation of repository.Gyms.
type Gyms struct {
	mu   sync.RWMutex
	gyms map[string]*model.Gym
}

// NewGyms creates an empty in-memory gyms repository.
func NewGyms() *Gyms {
	return &Gyms{gyms: make(map[string]*model.Gym)}
}

// CreateGym stores a gym.
func (r *Gyms) CreateGym(ctx context.Context, gym *model.Gym) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *gym
	r.gyms[gym.ID] = &copied
	return nil
}

// GetGymByID retrieves a gym by ID.
func (r *Gyms) GetGymByID(ctx context.Context, id string) (*model.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gym, ok := r.gyms[id]
	if !ok {
		return nil, repository.ErrGymNotFound
	}

	copied := *gym
	return &copied, nil
}

// SearchGyms returns a page of gyms whose title contains the query,
// case-insensitively, ordered by creation time.
func (r *Gyms) SearchGyms(ctx context.Context, query string, page int) ([]*model.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Gym, 0)
	for _, gym := range r.gyms {
		if strings.Contains(strings.ToLower(gym.Title), strings.ToLower(query)) {
			copied := *gym
			matched = append(matched, &copied)
		}
	}

	sortByCreation(matched)
	return paginate(matched, page), nil
}

// GetNearbyGyms returns gyms within radiusKm, filtered with the same
// haversine formula the check-in use case applies.
func (r *Gyms) GetNearbyGyms(ctx context.Context, latitude, longitude, radiusKm float64) ([]*model.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	origin := geo.Coordinate{Latitude: latitude, Longitude: longitude}

	nearby := make([]*model.Gym, 0)
	for _, gym := range r.gyms {
		target := geo.Coordinate{Latitude: gym.Latitude, Longitude: gym.Longitude}
		if geo.DistanceKm(origin, target) <= radiusKm {
			copied := *gym
			nearby = append(nearby, &copied)
		}
	}

	sortByCreation(nearby)
	return nearby, nil
}

func sortByCreation(gyms []*model.Gym) {
	sort.Slice(gyms, func(i, j int) bool {
		if gyms[i].CreatedAt.Equal(gyms[j].CreatedAt) {
			return gyms[i].ID < gyms[j].ID
		}
		return gyms[i].CreatedAt.Before(gyms[j].CreatedAt)
	})
}

func paginate(gyms []*model.Gym, page int) []*model.Gym {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * repository.PageSize
	if start >= len(gyms) {
		return []*model.Gym{}
	}

	end := start + repository.PageSize
	if end > len(gyms) {
		end = len(gyms)
	}

	return gyms[start:end]
}
