package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/checkfit/checkfit/internal/model"
)

// Gym validation errors.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrCoordinatesInvalid = errors.New("latitude and longitude must be valid coordinates")
)

// CreateGymRequest represents the request body for creating a gym.
type CreateGymRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Validate checks the gym fields.
func (r *CreateGymRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return ErrCoordinatesInvalid
	}
	return nil
}

// GymResponse represents a gym in API responses.
type GymResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

// GymListResponse wraps a list of gyms.
type GymListResponse struct {
	Gyms []GymResponse `json:"gyms"`
}

// CreatedGymResponse wraps a single created gym.
type CreatedGymResponse struct {
	Gym GymResponse `json:"gym"`
}

// ToGymResponse converts a Gym model to GymResponse DTO.
func ToGymResponse(gym *model.Gym) GymResponse {
	return GymResponse{
		ID:          gym.ID,
		Title:       gym.Title,
		Description: gym.Description,
		Phone:       gym.Phone,
		Latitude:    gym.Latitude,
		Longitude:   gym.Longitude,
		CreatedAt:   gym.CreatedAt,
	}
}

// ToGymListResponse converts a slice of Gym models to GymListResponse.
func ToGymListResponse(gyms []*model.Gym) GymListResponse {
	responses := make([]GymResponse, len(gyms))
	for i, gym := range gyms {
		responses[i] = ToGymResponse(gym)
	}
	return GymListResponse{Gyms: responses}
}
