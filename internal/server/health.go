// health.go - Health and readiness probes.
package server

import (
	"net/http"
	"time"
)

// ComponentStatus represents the health of an individual component.
type ComponentStatus string

const (
	ComponentStatusUp   ComponentStatus = "up"
	ComponentStatusDown ComponentStatus = "down"
)

// Health is the /health response body.
type Health struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	UptimeSecs int64                      `json:"uptime_seconds"`
	Components map[string]ComponentStatus `json:"components"`
}

// handleHealth reports per-component health. The store component is down
// when the data directory has become inaccessible.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	health := Health{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Version:    s.cfg.Build.Version,
		UptimeSecs: int64(time.Since(s.started).Seconds()),
		Components: make(map[string]ComponentStatus),
	}

	if err := s.cfg.Store.Ping(); err != nil {
		health.Status = "unhealthy"
		health.Components["store"] = ComponentStatusDown
	} else {
		health.Components["store"] = ComponentStatusUp
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

// handleReady is a lightweight readiness probe for load balancers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
