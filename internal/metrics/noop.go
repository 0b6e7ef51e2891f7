package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncUserAuthenticated is a no-op.
func (n *NoopRecorder) IncUserAuthenticated() {}

// IncGymCreated is a no-op.
func (n *NoopRecorder) IncGymCreated() {}

// IncNearbyCacheHit is a no-op.
func (n *NoopRecorder) IncNearbyCacheHit() {}

// IncNearbyCacheMiss is a no-op.
func (n *NoopRecorder) IncNearbyCacheMiss() {}

// IncCheckInCreated is a no-op.
func (n *NoopRecorder) IncCheckInCreated() {}

// IncCheckInValidated is a no-op.
func (n *NoopRecorder) IncCheckInValidated() {}

// ObserveCheckInDuration is a no-op.
func (n *NoopRecorder) ObserveCheckInDuration(duration time.Duration) {}
