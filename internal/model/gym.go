// Package model defines domain entities for the application.
package model

import "time"

// Gym represents a gym that members can check into.
// Latitude and longitude are stored as NUMERIC(9,6) in the database
// and carried as float64 in memory; six decimal places is roughly
// 0.11 m of precision at the equator.
type Gym struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}
