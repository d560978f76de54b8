package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vigia-edu/vigia/internal/domain/types"
)

// RankingDependencies defines the interface for ranking operations.
type RankingDependencies interface {
	TopRisk(ctx context.Context, n int) ([]types.RankingEntry, error)
	EvaluateAll(ctx context.Context) ([]types.RiskAssessment, error)
}

// RankingHandler handles descending-risk ranking requests.
type RankingHandler struct {
	deps RankingDependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleGetRanking handles GET /ranking?limit=N requests.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}
	entries, err := h.deps.TopRisk(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleEvaluate handles POST /evaluate requests, running a fresh batch
// evaluation of the whole roster.
func (h *RankingHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	assessments, err := h.deps.EvaluateAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessments)
}
