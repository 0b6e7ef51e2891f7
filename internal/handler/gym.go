package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/checkfit/checkfit/internal/handler/dto"
	"github.com/checkfit/checkfit/internal/service"
)

// GymHandler handles gym creation and discovery endpoints.
type GymHandler struct {
	svc    *service.GymService
	logger *slog.Logger
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(svc *service.GymService, logger *slog.Logger) *GymHandler {
	return &GymHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /gyms.
func (h *GymHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	gym, err := h.svc.CreateGym(r.Context(), service.CreateGymInput{
		Title:       req.Title,
		Description: req.Description,
		Phone:       req.Phone,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("gym_created", "gym_id", gym.ID, "title", gym.Title)

	writeJSON(w, http.StatusCreated, dto.CreatedGymResponse{Gym: dto.ToGymResponse(gym)})
}

// Search handles GET /gyms/search.
func (h *GymHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := parsePage(r.URL.Query().Get("page"))

	gyms, err := h.svc.SearchGyms(r.Context(), query, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGymListResponse(gyms))
}

// Nearby handles GET /gyms/nearby.
func (h *GymHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	latitude, latErr := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	longitude, lonErr := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude query parameters are required.")
		return
	}

	gyms, err := h.svc.FetchNearbyGyms(r.Context(), latitude, longitude)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGymListResponse(gyms))
}

// parsePage parses a 1-based page query parameter, defaulting to 1.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
