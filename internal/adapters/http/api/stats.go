package api

import (
	"context"
	"net/http"

	"github.com/vigia-edu/vigia/internal/domain/types"
)

// StatsDependencies defines the interface for cohort stats.
type StatsDependencies interface {
	GetStats(ctx context.Context) types.Stats
}

// StatsHandler handles cohort statistics requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetStats(r.Context()))
}
