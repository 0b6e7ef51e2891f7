package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkfit/checkfit/internal/auth"
	"github.com/checkfit/checkfit/internal/handler/dto"
	"github.com/checkfit/checkfit/internal/service"
)

// CheckInHandler handles check-in endpoints.
type CheckInHandler struct {
	svc    *service.CheckInService
	logger *slog.Logger
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(svc *service.CheckInService, logger *slog.Logger) *CheckInHandler {
	return &CheckInHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /gyms/{gymId}/check-ins.
func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	gymID := chi.URLParam(r, "gymId")
	if gymID == "" {
		writeError(w, http.StatusBadRequest, "Gym ID is required.")
		return
	}

	var req dto.CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity := auth.MustIdentityFromContext(r.Context())

	checkIn, err := h.svc.CheckIn(r.Context(), service.CheckInInput{
		UserID:        identity.UserID,
		GymID:         gymID,
		UserLatitude:  req.Latitude,
		UserLongitude: req.Longitude,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("check_in_created",
		"check_in_id", checkIn.ID,
		"user_id", checkIn.UserID,
		"gym_id", checkIn.GymID,
	)

	writeJSON(w, http.StatusCreated, dto.CreatedCheckInResponse{CheckIn: dto.ToCheckInResponse(checkIn)})
}

// Validate handles PATCH /check-ins/{checkInId}/validate.
func (h *CheckInHandler) Validate(w http.ResponseWriter, r *http.Request) {
	checkInID := chi.URLParam(r, "checkInId")
	if checkInID == "" {
		writeError(w, http.StatusBadRequest, "Check-in ID is required.")
		return
	}

	checkIn, err := h.svc.ValidateCheckIn(r.Context(), checkInID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("check_in_validated",
		"check_in_id", checkIn.ID,
		"user_id", checkIn.UserID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /check-ins/history.
func (h *CheckInHandler) History(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())
	page := parsePage(r.URL.Query().Get("page"))

	checkIns, err := h.svc.FetchCheckInHistory(r.Context(), identity.UserID, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCheckInHistoryResponse(checkIns))
}

// Metrics handles GET /check-ins/metrics.
func (h *CheckInHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	count, err := h.svc.CheckInMetrics(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckInMetricsResponse{CheckInsCount: count})
}
