// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/phomva/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessProvider reports whether scoring is available.
type ReadinessProvider interface {
	Ready() bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	ready ReadinessProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(ready ReadinessProvider) *HealthHandler {
	return &HealthHandler{ready: ready}
}

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth handles GET /healthz requests. It answers 503 until the
// models are loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.ready == nil || !h.ready.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// MetricsHandler serves the custom Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
