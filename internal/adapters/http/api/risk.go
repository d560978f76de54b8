package api

import (
	"context"
	"net/http"

	"github.com/vigia-edu/vigia/internal/domain/types"
)

// RiskDependencies defines the interface for risk evaluation.
type RiskDependencies interface {
	ComputeRisk(ctx context.Context, id string) (types.RiskAssessment, error)
}

// RiskHandler handles per-student risk requests.
type RiskHandler struct {
	deps RiskDependencies
}

// NewRiskHandler creates a new risk handler.
func NewRiskHandler(deps RiskDependencies) *RiskHandler {
	return &RiskHandler{deps: deps}
}

// HandleGetRisk handles GET /risk/{student_id} requests.
func (h *RiskHandler) HandleGetRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathParam(r, "/risk/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	assessment, err := h.deps.ComputeRisk(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}
