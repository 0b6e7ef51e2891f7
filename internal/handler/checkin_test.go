package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/checkfit/checkfit/internal/auth"
	"github.com/checkfit/checkfit/internal/metrics"
	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/repository/inmem"
	"github.com/checkfit/checkfit/internal/service"
)

type checkInFixture struct {
	handler *CheckInHandler
	gyms    *inmem.Gyms
	router  *chi.Mux
	userID  string
}

func newCheckInFixture(t *testing.T) *checkInFixture {
	t.Helper()

	gyms := inmem.NewGyms()
	svc := service.NewCheckInService(inmem.NewCheckIns(), gyms, metrics.NewNoop())
	h := NewCheckInHandler(svc, testLogger())

	userID := uuid.New().String()
	identity := &auth.Identity{UserID: userID, Role: model.RoleMember}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.ContextWithIdentity(req.Context(), identity)))
		})
	})
	r.Post("/gyms/{gymId}/check-ins", h.Create)
	r.Patch("/check-ins/{checkInId}/validate", h.Validate)
	r.Get("/check-ins/history", h.History)
	r.Get("/check-ins/metrics", h.Metrics)

	return &checkInFixture{handler: h, gyms: gyms, router: r, userID: userID}
}

func (f *checkInFixture) addGym(t *testing.T, latitude, longitude float64) string {
	t.Helper()
	gym := &model.Gym{
		ID:        uuid.New().String(),
		Title:     "JavaScript Gym",
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := f.gyms.CreateGym(context.Background(), gym); err != nil {
		t.Fatalf("CreateGym: %v", err)
	}
	return gym.ID
}

func TestCheckInHandler_Create(t *testing.T) {
	f := newCheckInFixture(t)
	gymID := f.addGym(t, gymLatitude, gymLongitude)

	body := fmt.Sprintf(`{"latitude":%v,"longitude":%v}`, gymLatitude, gymLongitude)
	req := httptest.NewRequest(http.MethodPost, "/gyms/"+gymID+"/check-ins", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var response struct {
		CheckIn struct {
			ID     string `json:"id"`
			UserID string `json:"user_id"`
			GymID  string `json:"gym_id"`
		} `json:"check_in"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.CheckIn.ID == "" {
		t.Error("expected check-in id")
	}
	if response.CheckIn.UserID != f.userID {
		t.Errorf("user_id = %q, want %q", response.CheckIn.UserID, f.userID)
	}
	if response.CheckIn.GymID != gymID {
		t.Errorf("gym_id = %q, want %q", response.CheckIn.GymID, gymID)
	}
}

func TestCheckInHandler_CreateDistantGym(t *testing.T) {
	f := newCheckInFixture(t)
	gymID := f.addGym(t, gymLatitude, gymLongitude)

	body := fmt.Sprintf(`{"latitude":%v,"longitude":%v}`, farLatitude, farLongitude)
	req := httptest.NewRequest(http.MethodPost, "/gyms/"+gymID+"/check-ins", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCheckInHandler_CreateUnknownGym(t *testing.T) {
	f := newCheckInFixture(t)

	body := fmt.Sprintf(`{"latitude":%v,"longitude":%v}`, gymLatitude, gymLongitude)
	req := httptest.NewRequest(http.MethodPost, "/gyms/"+uuid.New().String()+"/check-ins", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCheckInHandler_CreateTwiceSameDay(t *testing.T) {
	f := newCheckInFixture(t)
	gymID := f.addGym(t, gymLatitude, gymLongitude)

	body := fmt.Sprintf(`{"latitude":%v,"longitude":%v}`, gymLatitude, gymLongitude)

	first := httptest.NewRecorder()
	f.router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/gyms/"+gymID+"/check-ins", strings.NewReader(body)))
	if first.Code != http.StatusCreated {
		t.Fatalf("first check-in: status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	f.router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/gyms/"+gymID+"/check-ins", strings.NewReader(body)))
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second check-in: status = %d, want %d", second.Code, http.StatusBadRequest)
	}
}

func TestCheckInHandler_Validate(t *testing.T) {
	f := newCheckInFixture(t)
	gymID := f.addGym(t, gymLatitude, gymLongitude)

	body := fmt.Sprintf(`{"latitude":%v,"longitude":%v}`, gymLatitude, gymLongitude)
	createRec := httptest.NewRecorder()
	f.router.ServeHTTP(createRec, httptest.NewRequest(http.MethodPost, "/gyms/"+gymID+"/check-ins", strings.NewReader(body)))

	var created struct {
		CheckIn struct {
			ID string `json:"id"`
		} `json:"check_in"`
	}
	if err := json.NewDecoder(createRec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/check-ins/"+created.CheckIn.ID+"/validate", nil)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusNoContent, rec.Body.String())
	}
}

func TestCheckInHandler_ValidateUnknown(t *testing.T) {
	f := newCheckInFixture(t)

	req := httptest.NewRequest(http.MethodPatch, "/check-ins/"+uuid.New().String()+"/validate", nil)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCheckInHandler_HistoryAndMetrics(t *testing.T) {
	f := newCheckInFixture(t)
	gymID := f.addGym(t, gymLatitude, gymLongitude)

	body := fmt.Sprintf(`{"latitude":%v,"longitude":%v}`, gymLatitude, gymLongitude)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gyms/"+gymID+"/check-ins", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("check-in: status = %d", rec.Code)
	}

	historyRec := httptest.NewRecorder()
	f.router.ServeHTTP(historyRec, httptest.NewRequest(http.MethodGet, "/check-ins/history", nil))
	if historyRec.Code != http.StatusOK {
		t.Fatalf("history: status = %d", historyRec.Code)
	}

	var history struct {
		CheckIns []struct {
			GymID string `json:"gym_id"`
		} `json:"check_ins"`
	}
	if err := json.NewDecoder(historyRec.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(history.CheckIns) != 1 {
		t.Fatalf("got %d check-ins, want 1", len(history.CheckIns))
	}
	if history.CheckIns[0].GymID != gymID {
		t.Errorf("gym_id = %q, want %q", history.CheckIns[0].GymID, gymID)
	}

	metricsRec := httptest.NewRecorder()
	f.router.ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/check-ins/metrics", nil))
	if metricsRec.Code != http.StatusOK {
		t.Fatalf("metrics: status = %d", metricsRec.Code)
	}

	var count struct {
		CheckInsCount int64 `json:"check_ins_count"`
	}
	if err := json.NewDecoder(metricsRec.Body).Decode(&count); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if count.CheckInsCount != 1 {
		t.Errorf("check_ins_count = %d, want 1", count.CheckInsCount)
	}
}
