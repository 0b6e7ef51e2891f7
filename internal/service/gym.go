package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/checkfit/checkfit/internal/cache"
	"github.com/checkfit/checkfit/internal/metrics"
	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository"
)

// NearbyRadiusKm is the fixed radius for the nearby-gyms listing.
const NearbyRadiusKm = 10.0

// GymService handles gym creation and discovery.
type GymService struct {
	gyms    repository.Gyms
	cache   *cache.Cache
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewGymService creates a new GymService.
// cache may be nil, in which case nearby results are not cached.
func NewGymService(gyms repository.Gyms, cacheClient *cache.Cache, logger *slog.Logger, recorder metrics.Recorder) *GymService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GymService{
		gyms:    gyms,
		cache:   cacheClient,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateGymInput defines input for creating a gym.
type CreateGymInput struct {
	Title       string
	Description *string
	Phone       *string
	Latitude    float64
	Longitude   float64
}

// CreateGym validates the input and persists a new gym.
func (s *GymService) CreateGym(ctx context.Context, input CreateGymInput) (*model.Gym, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrMissingRequiredField
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	gym := &model.Gym{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Phone:       input.Phone,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.gyms.CreateGym(ctx, gym); err != nil {
		return nil, fmt.Errorf("failed to create gym: %w", err)
	}

	s.metrics.IncGymCreated()

	return gym, nil
}

// GetGym retrieves a gym by ID.
func (s *GymService) GetGym(ctx context.Context, id string) (*model.Gym, error) {
	gym, err := s.gyms.GetGymByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGymNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	return gym, nil
}

// SearchGyms returns a page of gyms with titles matching the query.
func (s *GymService) SearchGyms(ctx context.Context, query string, page int) ([]*model.Gym, error) {
	if page < 1 {
		page = 1
	}

	gyms, err := s.gyms.SearchGyms(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search gyms: %w", err)
	}

	return gyms, nil
}

// FetchNearbyGyms returns all gyms within NearbyRadiusKm of the caller.
// Results are cached briefly since callers poll this while moving.
func (s *GymService) FetchNearbyGyms(ctx context.Context, latitude, longitude float64) ([]*model.Gym, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetNearbyGyms(ctx, latitude, longitude)
		if err == nil && cached != nil {
			s.metrics.IncNearbyCacheHit()
			return cached, nil
		}
		s.metrics.IncNearbyCacheMiss()
	}

	gyms, err := s.gyms.GetNearbyGyms(ctx, latitude, longitude, NearbyRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nearby gyms: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetNearbyGyms(ctx, latitude, longitude, gyms); err != nil {
			s.logger.Warn("failed to cache nearby gyms", "error", err)
		}
	}

	return gyms, nil
}

// validateCoordinates checks latitude and longitude degree ranges.
func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return ErrInvalidCoordinates
	}
	if longitude < -180 || longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
