package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered        uint64
	UsersAuthenticated     uint64
	GymsCreated            uint64
	NearbyCacheHits        uint64
	NearbyCacheMisses      uint64
	CheckInsCreated        uint64
	CheckInsValidated      uint64
	CheckInDurationCount   uint64
	CheckInDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered        uint64
	usersAuthenticated     uint64
	gymsCreated            uint64
	nearbyCacheHits        uint64
	nearbyCacheMisses      uint64
	checkInsCreated        uint64
	checkInsValidated      uint64
	checkInDurationCount   uint64
	checkInDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:        atomic.LoadUint64(&m.usersRegistered),
		UsersAuthenticated:     atomic.LoadUint64(&m.usersAuthenticated),
		GymsCreated:            atomic.LoadUint64(&m.gymsCreated),
		NearbyCacheHits:        atomic.LoadUint64(&m.nearbyCacheHits),
		NearbyCacheMisses:      atomic.LoadUint64(&m.nearbyCacheMisses),
		CheckInsCreated:        atomic.LoadUint64(&m.checkInsCreated),
		CheckInsValidated:      atomic.LoadUint64(&m.checkInsValidated),
		CheckInDurationCount:   atomic.LoadUint64(&m.checkInDurationCount),
		CheckInDurationTotalNs: atomic.LoadInt64(&m.checkInDurationTotalNs),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncUserAuthenticated increments the login counter.
func (m *InMemoryRecorder) IncUserAuthenticated() {
	atomic.AddUint64(&m.usersAuthenticated, 1)
}

// IncGymCreated increments the gym created counter.
func (m *InMemoryRecorder) IncGymCreated() {
	atomic.AddUint64(&m.gymsCreated, 1)
}

// IncNearbyCacheHit increments the nearby cache hit counter.
func (m *InMemoryRecorder) IncNearbyCacheHit() {
	atomic.AddUint64(&m.nearbyCacheHits, 1)
}

// IncNearbyCacheMiss increments the nearby cache miss counter.
func (m *InMemoryRecorder) IncNearbyCacheMiss() {
	atomic.AddUint64(&m.nearbyCacheMisses, 1)
}

// IncCheckInCreated increments the check-in created counter.
func (m *InMemoryRecorder) IncCheckInCreated() {
	atomic.AddUint64(&m.checkInsCreated, 1)
}

// IncCheckInValidated increments the check-in validated counter.
func (m *InMemoryRecorder) IncCheckInValidated() {
	atomic.AddUint64(&m.checkInsValidated, 1)
}

// ObserveCheckInDuration records how long a check-in took end to end.
func (m *InMemoryRecorder) ObserveCheckInDuration(duration time.Duration) {
	atomic.AddUint64(&m.checkInDurationCount, 1)
	atomic.AddInt64(&m.checkInDurationTotalNs, duration.Nanoseconds())
}
