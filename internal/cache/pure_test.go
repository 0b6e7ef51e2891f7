package cache

import (
	"strings"
	"testing"
)

func TestHashIP(t *testing.T) {
	a := hashIP("203.0.113.10")
	b := hashIP("203.0.113.11")

	if a == b {
		t.Error("expected different IPs to hash differently")
	}

	if a != hashIP("203.0.113.10") {
		t.Error("expected hashing to be deterministic")
	}

	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}

	if strings.Contains(a, "203") {
		t.Error("hashed key must not contain the raw IP")
	}
}

func TestNearbyKey(t *testing.T) {
	key := nearbyKey(-25.3727822, -49.0839456)

	if key != "gyms:nearby:-25.3728:-49.0839" {
		t.Errorf("unexpected key: %s", key)
	}

	// Coordinates within the same ~11m bucket share a key.
	if nearbyKey(-25.37281, -49.08391) != nearbyKey(-25.37284, -49.08393) {
		t.Error("expected nearby coordinates to share a cache key")
	}
}
