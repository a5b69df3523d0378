// Package http holds the HTTP middleware, health probes and metrics
// endpoint shared by every route of the news API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/budge42/novanews/internal/handler/http/respond"

	"github.com/sony/gobreaker"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Version   string                 `json:"version"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// CircuitState is the read side of a circuit breaker.
type CircuitState interface {
	Name() string
	State() gobreaker.State
}

// circuitCounter is implemented by breakers that expose their current counts.
type circuitCounter interface {
	Counts() gobreaker.Counts
}

// HealthHandler reports provider configuration and circuit state.
// It answers 200 even while the circuit is open: the API keeps serving
// fallback lists, so the process is degraded rather than down.
type HealthHandler struct {
	Version string
	Mode    string
	Model   string
	Breaker CircuitState
	Now     func() time.Time
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	provider := CheckStatus{
		Status: "healthy",
		Details: map[string]any{
			"mode":  h.Mode,
			"model": h.Model,
		},
	}
	status := "healthy"

	if h.Breaker != nil {
		state := h.Breaker.State()
		provider.Details["name"] = h.Breaker.Name()
		provider.Details["circuit"] = state.String()
		if c, ok := h.Breaker.(circuitCounter); ok {
			counts := c.Counts()
			provider.Details["requests"] = counts.Requests
			provider.Details["failures"] = counts.TotalFailures
		}
		if state != gobreaker.StateClosed {
			provider.Status = "degraded"
			provider.Message = "circuit breaker " + state.String()
			status = "degraded"
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Checks:    map[string]CheckStatus{"provider": provider},
	})
}

// ReadyHandler answers 503 while the provider circuit is open so a load
// balancer can shift traffic elsewhere.
type ReadyHandler struct {
	Breaker CircuitState
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Breaker != nil && h.Breaker.State() == gobreaker.StateOpen {
		writeText(w, http.StatusServiceUnavailable, "provider circuit open")
		return
	}
	writeText(w, http.StatusOK, "ready")
}

// LiveHandler always answers 200 while the process can serve requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "alive")
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Warn("failed to write probe response", slog.Any("error", err))
	}
}
