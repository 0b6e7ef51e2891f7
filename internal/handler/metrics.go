package handler

import (
	"fmt"
	"net/http"

	"github.com/checkfit/checkfit/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "checkfit_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "checkfit_users_authenticated_total %d\n", snap.UsersAuthenticated)

	writeMetric(w, "checkfit_gyms_created_total %d\n", snap.GymsCreated)
	writeMetric(w, "checkfit_nearby_cache_hits_total %d\n", snap.NearbyCacheHits)
	writeMetric(w, "checkfit_nearby_cache_misses_total %d\n", snap.NearbyCacheMisses)

	writeMetric(w, "checkfit_check_ins_created_total %d\n", snap.CheckInsCreated)
	writeMetric(w, "checkfit_check_ins_validated_total %d\n", snap.CheckInsValidated)
	writeMetric(w, "checkfit_check_in_duration_seconds_count %d\n", snap.CheckInDurationCount)
	writeMetric(w, "checkfit_check_in_duration_seconds_sum %.6f\n", float64(snap.CheckInDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
