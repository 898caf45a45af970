package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/helixir/observability-service/internal/health"
)

// Response types for JSON serialization.

type healthCheckResponse struct {
	Status     string            `json:"status"`
	PodName    string            `json:"pod_name"`
	AppVersion string            `json:"app_version"`
	Timestamp  string            `json:"timestamp"`
	Checks     map[string]string `json:"checks"`
	Details    map[string]string `json:"details,omitempty"`
}

type simpleResponse struct {
	Message string `json:"message"`
	Pod     string `json:"pod"`
}

type computationResponse struct {
	Result          int64   `json:"result"`
	ComputationType string  `json:"computation_type"`
	DurationMS      float64 `json:"duration_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// snapshotToResponse converts a health snapshot to its wire form with an
// RFC3339 UTC timestamp.
func snapshotToResponse(snap health.Snapshot) healthCheckResponse {
	return healthCheckResponse{
		Status:     string(snap.Status),
		PodName:    snap.PodName,
		AppVersion: snap.AppVersion,
		Timestamp:  snap.Timestamp.Format(time.RFC3339Nano),
		Checks:     snap.Checks,
		Details:    snap.Details,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort log; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}
