package api

import (
	"context"
	"net/http"

	"github.com/vigia-edu/vigia/internal/domain/area"
	"github.com/vigia-edu/vigia/internal/domain/types"
)

// AreaDependencies defines the interface for area recommendations.
type AreaDependencies interface {
	AssignArea(ctx context.Context, id string) (types.AreaRecommendation, error)
	Areas(ctx context.Context) []area.Area
}

// AreaHandler handles academic area recommendation requests.
type AreaHandler struct {
	deps AreaDependencies
}

// NewAreaHandler creates a new area handler.
func NewAreaHandler(deps AreaDependencies) *AreaHandler {
	return &AreaHandler{deps: deps}
}

// HandleGetArea handles GET /area/{student_id} requests.
func (h *AreaHandler) HandleGetArea(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathParam(r, "/area/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	rec, err := h.deps.AssignArea(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// areaItem is the catalog read shape.
type areaItem struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Family string `json:"family,omitempty"`
}

// HandleListAreas handles GET /areas requests.
func (h *AreaHandler) HandleListAreas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	catalog := h.deps.Areas(r.Context())
	items := make([]areaItem, len(catalog))
	for i, a := range catalog {
		items[i] = areaItem{ID: a.ID, Name: a.Name, Family: area.FamilyOf(a.ID)}
	}
	writeJSON(w, http.StatusOK, items)
}
