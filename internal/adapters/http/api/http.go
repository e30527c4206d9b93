// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/phomva/internal/adapters/payload"
	service "github.com/okian/phomva/internal/app"
	"github.com/okian/phomva/internal/domain/event"
	"github.com/okian/phomva/internal/mva/estimator"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScoreBatch(ctx context.Context, b *payload.Batch) (*service.Result, error)
	RequiredInputs() ([]event.Input, error)
	Ready() bool
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	scoreHandler  *ScoreHandler
	inputsHandler *InputsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(deps),
		scoreHandler:  NewScoreHandler(deps),
		inputsHandler: NewInputsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/v1/inputs", MetricsMiddleware(s.inputsHandler.HandleGetInputs, "inputs"))
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON encodes v before committing status, so an unencodable body
// becomes a 500 instead of a truncated response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "encode_failed", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code, requestID string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: requestID})
}

// statusFor maps a scoring failure to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, payload.ErrDecode), errors.Is(err, payload.ErrInvalid):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, estimator.ErrTypeMismatch):
		return http.StatusBadRequest, "type_mismatch"
	case errors.Is(err, estimator.ErrDataUnavailable):
		return http.StatusUnprocessableEntity, "data_unavailable"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
