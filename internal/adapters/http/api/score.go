package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/phomva/internal/adapters/payload"
	service "github.com/okian/phomva/internal/app"
)

// RequestIDHeader carries the caller's request id; one is generated when absent.
const RequestIDHeader = "X-Request-ID"

// ScoreDependencies defines what the score handler needs.
type ScoreDependencies interface {
	ScoreBatch(ctx context.Context, b *payload.Batch) (*service.Result, error)
}

// ScoreHandler handles scoring requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

type scoreResponse struct {
	RequestID string `json:"request_id"`
	*service.Result
}

// HandlePostScore handles POST /v1/score requests.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "", nil)
		return
	}

	requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	batch, err := payload.DecodeJSON(r.Body)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, requestID, err)
		return
	}

	res, err := h.deps.ScoreBatch(r.Context(), batch)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{RequestID: requestID, Result: res})
}
