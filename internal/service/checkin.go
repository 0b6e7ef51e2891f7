package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/checkfit/checkfit/internal/geo"
	"github.com/checkfit/checkfit/internal/metrics"
	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository"
)

// MaxDistanceKm is the geofence radius for a check-in: the user must be
// within 100 meters of the gym.
const MaxDistanceKm = 0.1

// CheckInService handles check-in creation, validation, history and metrics.
type CheckInService struct {
	checkIns repository.CheckIns
	gyms     repository.Gyms
	metrics  metrics.Recorder

	// now is swapped in tests to exercise day boundaries and the
	// validation window.
	now func() time.Time
}

// NewCheckInService creates a new CheckInService.
func NewCheckInService(checkIns repository.CheckIns, gyms repository.Gyms, recorder metrics.Recorder) *CheckInService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CheckInService{
		checkIns: checkIns,
		gyms:     gyms,
		metrics:  recorder,
		now:      time.Now,
	}
}

// CheckInInput defines input for creating a check-in.
type CheckInInput struct {
	UserID        string
	GymID         string
	UserLatitude  float64
	UserLongitude float64
}

// CheckIn creates a check-in for the user at the gym, enforcing the
// geofence and the one-check-in-per-day limit.
func (s *CheckInService) CheckIn(ctx context.Context, input CheckInInput) (*model.CheckIn, error) {
	start := s.now()

	gym, err := s.gyms.GetGymByID(ctx, input.GymID)
	if err != nil {
		if errors.Is(err, repository.ErrGymNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to look up gym: %w", err)
	}

	distance := geo.DistanceKm(
		geo.Coordinate{Latitude: input.UserLatitude, Longitude: input.UserLongitude},
		geo.Coordinate{Latitude: gym.Latitude, Longitude: gym.Longitude},
	)
	if distance > MaxDistanceKm {
		return nil, ErrMaxDistance
	}

	_, err = s.checkIns.GetCheckInByUserOnDate(ctx, input.UserID, start)
	if err == nil {
		return nil, ErrMaxNumberOfCheckIns
	}
	if !errors.Is(err, repository.ErrCheckInNotFound) {
		return nil, fmt.Errorf("failed to check daily limit: %w", err)
	}

	checkIn := &model.CheckIn{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		GymID:     input.GymID,
		CreatedAt: start.UTC(),
	}

	if err := s.checkIns.CreateCheckIn(ctx, checkIn); err != nil {
		// A concurrent request won the race; same outcome as the
		// read-path limit check.
		if errors.Is(err, repository.ErrDuplicateCheckIn) {
			return nil, ErrMaxNumberOfCheckIns
		}
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	s.metrics.IncCheckInCreated()
	s.metrics.ObserveCheckInDuration(s.now().Sub(start))

	return checkIn, nil
}

// ValidateCheckIn marks a check-in as validated by an admin.
// Validation must happen within model.ValidationWindow of creation.
func (s *CheckInService) ValidateCheckIn(ctx context.Context, checkInID string) (*model.CheckIn, error) {
	checkIn, err := s.checkIns.GetCheckInByID(ctx, checkInID)
	if err != nil {
		if errors.Is(err, repository.ErrCheckInNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to look up check-in: %w", err)
	}

	now := s.now()
	if !checkIn.CanValidateAt(now) {
		return nil, ErrLateCheckInValidation
	}

	validatedAt := now.UTC()
	checkIn.ValidatedAt = &validatedAt

	if err := s.checkIns.SaveCheckIn(ctx, checkIn); err != nil {
		if errors.Is(err, repository.ErrCheckInNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	s.metrics.IncCheckInValidated()

	return checkIn, nil
}

// FetchCheckInHistory returns a page of the user's check-ins.
func (s *CheckInService) FetchCheckInHistory(ctx context.Context, userID string, page int) ([]*model.CheckIn, error) {
	if page < 1 {
		page = 1
	}

	checkIns, err := s.checkIns.ListCheckInsByUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-in history: %w", err)
	}

	return checkIns, nil
}

// CheckInMetrics returns the user's total check-in count.
func (s *CheckInService) CheckInMetrics(ctx context.Context, userID string) (int64, error) {
	count, err := s.checkIns.CountCheckInsByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}

	return count, nil
}
