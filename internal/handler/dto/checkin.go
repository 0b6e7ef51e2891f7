package dto

import (
	"time"

	"github.com/checkfit/checkfit/internal/model"
)

// CreateCheckInRequest represents the request body for a check-in.
type CreateCheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the check-in coordinates.
func (r *CreateCheckInRequest) Validate() error {
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return ErrCoordinatesInvalid
	}
	return nil
}

// CheckInResponse represents a check-in in API responses.
type CheckInResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GymID       string     `json:"gym_id"`
	ValidatedAt *time.Time `json:"validated_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreatedCheckInResponse wraps a single created check-in.
type CreatedCheckInResponse struct {
	CheckIn CheckInResponse `json:"check_in"`
}

// CheckInHistoryResponse wraps a page of check-ins.
type CheckInHistoryResponse struct {
	CheckIns []CheckInResponse `json:"check_ins"`
}

// CheckInMetricsResponse carries the user's total check-in count.
type CheckInMetricsResponse struct {
	CheckInsCount int64 `json:"check_ins_count"`
}

// ToCheckInResponse converts a CheckIn model to CheckInResponse DTO.
func ToCheckInResponse(checkIn *model.CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:          checkIn.ID,
		UserID:      checkIn.UserID,
		GymID:       checkIn.GymID,
		ValidatedAt: checkIn.ValidatedAt,
		CreatedAt:   checkIn.CreatedAt,
	}
}

// ToCheckInHistoryResponse converts a slice of CheckIn models.
func ToCheckInHistoryResponse(checkIns []*model.CheckIn) CheckInHistoryResponse {
	responses := make([]CheckInResponse, len(checkIns))
	for i, checkIn := range checkIns {
		responses[i] = ToCheckInResponse(checkIn)
	}
	return CheckInHistoryResponse{CheckIns: responses}
}
