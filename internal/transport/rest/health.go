package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	version string
	storage string
}

// NewHealthHandler creates a HealthHandler. db may be nil when the storage
// backend has nothing to ping; readiness then always succeeds.
func NewHealthHandler(db dbPinger, storage, version string) *HealthHandler {
	return &HealthHandler{db: db, storage: storage, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 when storage answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.checkStorage(r.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status.Status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with storage latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, name := h.checkStorage(r.Context())

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status.Status,
		Version:    h.version,
		Components: map[string]CompStatus{name: status},
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) (CompStatus, string) {
	name := h.storage
	if name == "" {
		name = "storage"
	}
	if h.db == nil {
		return CompStatus{Status: "ok"}, name
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}, name
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}, name
}
