package api

import (
	"net/http"

	"github.com/okian/phomva/internal/domain/event"
)

// InputsDependencies defines what the inputs handler needs.
type InputsDependencies interface {
	RequiredInputs() ([]event.Input, error)
}

// InputsHandler lists the event products a score request must carry.
type InputsHandler struct {
	deps InputsDependencies
}

// NewInputsHandler creates a new inputs handler.
func NewInputsHandler(deps InputsDependencies) *InputsHandler {
	return &InputsHandler{deps: deps}
}

type inputsResponse struct {
	Inputs []event.Input `json:"inputs"`
}

// HandleGetInputs handles GET /v1/inputs requests.
func (h *InputsHandler) HandleGetInputs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "", nil)
		return
	}
	in, err := h.deps.RequiredInputs()
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, "", err)
		return
	}
	writeJSON(w, http.StatusOK, inputsResponse{Inputs: in})
}
