package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/checkfit/checkfit/internal/metrics"
	"github.com/checkfit/checkfit/internal/repository/inmem"
	"github.com/checkfit/checkfit/internal/service"
)

const (
	gymLatitude   = -27.2092052
	gymLongitude  = -49.6401091
	farLatitude   = -25.3727822
	farLongitude  = -49.0839456
)

func newGymHandler(t *testing.T) *GymHandler {
	t.Helper()
	svc := service.NewGymService(inmem.NewGyms(), nil, testLogger(), metrics.NewNoop())
	return NewGymHandler(svc, testLogger())
}

func createGym(t *testing.T, h *GymHandler, title string, latitude, longitude float64) string {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"latitude":%v,"longitude":%v}`, title, latitude, longitude)
	req := httptest.NewRequest(http.MethodPost, "/gyms", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create gym: status = %d (body %s)", rec.Code, rec.Body.String())
	}

	var response struct {
		Gym struct {
			ID string `json:"id"`
		} `json:"gym"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response.Gym.ID
}

func TestGymHandler_Create(t *testing.T) {
	h := newGymHandler(t)

	body := `{"title":"JavaScript Gym","description":"The best gym","phone":"1199999999","latitude":-27.2092052,"longitude":-49.6401091}`
	req := httptest.NewRequest(http.MethodPost, "/gyms", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var response struct {
		Gym struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"gym"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Gym.ID == "" {
		t.Error("expected gym id")
	}
	if response.Gym.Title != "JavaScript Gym" {
		t.Errorf("title = %q", response.Gym.Title)
	}
}

func TestGymHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "missing title", body: `{"latitude":-27.2,"longitude":-49.6}`},
		{name: "latitude out of range", body: `{"title":"Gym","latitude":-91,"longitude":-49.6}`},
		{name: "longitude out of range", body: `{"title":"Gym","latitude":-27.2,"longitude":181}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newGymHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/gyms", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestGymHandler_Search(t *testing.T) {
	h := newGymHandler(t)

	createGym(t, h, "JavaScript Gym", gymLatitude, gymLongitude)
	createGym(t, h, "TypeScript Gym", gymLatitude, gymLongitude)

	req := httptest.NewRequest(http.MethodGet, "/gyms/search?q=JavaScript", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Gyms []struct {
			Title string `json:"title"`
		} `json:"gyms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Gyms) != 1 {
		t.Fatalf("got %d gyms, want 1", len(response.Gyms))
	}
	if response.Gyms[0].Title != "JavaScript Gym" {
		t.Errorf("title = %q", response.Gyms[0].Title)
	}
}

func TestGymHandler_Nearby(t *testing.T) {
	h := newGymHandler(t)

	createGym(t, h, "Near Gym", gymLatitude, gymLongitude)
	createGym(t, h, "Far Gym", farLatitude, farLongitude)

	url := fmt.Sprintf("/gyms/nearby?latitude=%v&longitude=%v", gymLatitude, gymLongitude)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	h.Nearby(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Gyms []struct {
			Title string `json:"title"`
		} `json:"gyms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Gyms) != 1 {
		t.Fatalf("got %d gyms, want 1", len(response.Gyms))
	}
	if response.Gyms[0].Title != "Near Gym" {
		t.Errorf("title = %q", response.Gyms[0].Title)
	}
}

func TestGymHandler_NearbyMissingCoordinates(t *testing.T) {
	h := newGymHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/gyms/nearby", nil)
	rec := httptest.NewRecorder()

	h.Nearby(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
