//go:build integration

package cache

import (
	"context"
	"testing"

	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationNearbyGymsCache(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	gyms := []*model.Gym{
		testutil.NewTestGym(t, "JavaScript Gym", -27.2092052, -49.6401091),
	}

	// Miss before set
	cached, err := c.GetNearbyGyms(ctx, -27.2092052, -49.6401091)
	if err != nil {
		t.Fatalf("GetNearbyGyms failed: %v", err)
	}
	if cached != nil {
		t.Fatal("expected cache miss")
	}

	if err := c.SetNearbyGyms(ctx, -27.2092052, -49.6401091, gyms); err != nil {
		t.Fatalf("SetNearbyGyms failed: %v", err)
	}

	cached, err = c.GetNearbyGyms(ctx, -27.2092052, -49.6401091)
	if err != nil {
		t.Fatalf("GetNearbyGyms failed: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("got %d gyms, want 1", len(cached))
	}
	if cached[0].ID != gyms[0].ID {
		t.Errorf("ID mismatch: got %q, want %q", cached[0].ID, gyms[0].ID)
	}

	// A different coordinate bucket misses
	cached, err = c.GetNearbyGyms(ctx, -25.3727822, -49.0839456)
	if err != nil {
		t.Fatalf("GetNearbyGyms failed: %v", err)
	}
	if cached != nil {
		t.Fatal("expected cache miss for different bucket")
	}
}

func TestIntegrationIPRateLimit(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	const (
		rps   = 1
		burst = 3
	)

	// The bucket starts full, so burst requests pass
	for i := 0; i < burst; i++ {
		result, err := c.CheckIPRateLimit(ctx, "203.0.113.7", rps, burst)
		if err != nil {
			t.Fatalf("CheckIPRateLimit %d failed: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	result, err := c.CheckIPRateLimit(ctx, "203.0.113.7", rps, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Fatal("request over burst should be rejected")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", result.RetryAfter)
	}

	// A different IP has its own bucket
	other, err := c.CheckIPRateLimit(ctx, "198.51.100.9", rps, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if !other.Allowed {
		t.Fatal("different IP should be allowed")
	}
}
