package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/checkfit/checkfit/internal/model"
)

const (
	// nearbyCachePrefix is the Redis key prefix for nearby-gym results.
	nearbyCachePrefix = "gyms:nearby:"
	// nearbyCacheTTL keeps nearby results fresh enough for a user walking
	// towards a gym while absorbing repeated map refreshes.
	nearbyCacheTTL = 60 * time.Second
)

// nearbyKey buckets coordinates to four decimal places (~11 m) so that
// nearby lookups from the same spot share a cache entry.
func nearbyKey(latitude, longitude float64) string {
	return fmt.Sprintf("%s%.4f:%.4f", nearbyCachePrefix, latitude, longitude)
}

// GetNearbyGyms retrieves cached nearby-gym results for the coordinates.
// Returns nil on a cache miss.
func (c *Cache) GetNearbyGyms(ctx context.Context, latitude, longitude float64) ([]*model.Gym, error) {
	data, err := c.client.Get(ctx, nearbyKey(latitude, longitude)).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var gyms []*model.Gym
	if err := json.Unmarshal(data, &gyms); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return gyms, nil
}

// SetNearbyGyms caches nearby-gym results for the coordinates.
func (c *Cache) SetNearbyGyms(ctx context.Context, latitude, longitude float64, gyms []*model.Gym) error {
	data, err := json.Marshal(gyms)
	if err != nil {
		return fmt.Errorf("marshal nearby gyms: %w", err)
	}

	return c.client.Set(ctx, nearbyKey(latitude, longitude), data, nearbyCacheTTL).Err()
}
