package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// ObservationsDependencies defines the interface for the observation log.
type ObservationsDependencies interface {
	RecordObservation(ctx context.Context, o model.Observation) (model.Observation, error)
	ListObservations(ctx context.Context, studentID string) ([]model.Observation, error)
}

// ObservationsHandler handles qualitative observation requests.
type ObservationsHandler struct {
	deps ObservationsDependencies
}

// NewObservationsHandler creates a new observations handler.
func NewObservationsHandler(deps ObservationsDependencies) *ObservationsHandler {
	return &ObservationsHandler{deps: deps}
}

// observationRequest mirrors the JSON schema for POST /observations.
type observationRequest struct {
	StudentID string `json:"student_id"`
	Date      string `json:"date,omitempty"`
	Author    string `json:"author,omitempty"`
	Text      string `json:"text"`
}

func (o observationRequest) validate() error {
	if strings.TrimSpace(o.StudentID) == "" || strings.TrimSpace(o.Text) == "" {
		return ErrBadRequest
	}
	return nil
}

// HandlePost handles POST /observations requests.
func (h *ObservationsHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req observationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidBody)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	o := model.Observation{
		StudentID: req.StudentID,
		Author:    req.Author,
		Text:      req.Text,
	}
	if req.Date != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		o.Date = t
	}
	stored, err := h.deps.RecordObservation(r.Context(), o)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// HandleGet handles GET /observations/{student_id} requests.
func (h *ObservationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathParam(r, "/observations/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	observations, err := h.deps.ListObservations(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, observations)
}
