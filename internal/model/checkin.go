// Package model defines domain entities for the application.
package model

import "time"

// ValidationWindow is how long after creation a check-in can still be
// validated by an admin.
const ValidationWindow = 20 * time.Minute

// CheckIn records a user visiting a gym at a point in time.
// A check-in starts unvalidated and is mutated at most once, when an
// admin sets ValidatedAt within the validation window.
type CheckIn struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GymID       string     `json:"gym_id"`
	ValidatedAt *time.Time `json:"validated_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsValidated returns true once an admin has confirmed the check-in.
func (c *CheckIn) IsValidated() bool {
	return c.ValidatedAt != nil
}

// ValidationDeadline returns the instant after which validation must fail.
func (c *CheckIn) ValidationDeadline() time.Time {
	return c.CreatedAt.Add(ValidationWindow)
}

// CanValidateAt reports whether the check-in is still inside the
// validation window at the given instant.
func (c *CheckIn) CanValidateAt(now time.Time) bool {
	return !now.After(c.ValidationDeadline())
}
