package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// SurveysDependencies defines the interface for survey submissions.
type SurveysDependencies interface {
	SubmitSurvey(ctx context.Context, s model.SurveySubmission) (model.SurveySubmission, error)
	ListSurveys(ctx context.Context, studentID string) ([]model.SurveySubmission, error)
}

// SurveysHandler handles contextual survey requests.
type SurveysHandler struct {
	deps SurveysDependencies
}

// NewSurveysHandler creates a new surveys handler.
func NewSurveysHandler(deps SurveysDependencies) *SurveysHandler {
	return &SurveysHandler{deps: deps}
}

// surveyRequest mirrors the JSON schema for POST /surveys.
type surveyRequest struct {
	StudentID  string          `json:"student_id"`
	Selections map[string]bool `json:"selections"`

	Age              int    `json:"age,omitempty"`
	Siblings         int    `json:"siblings,omitempty"`
	NeighborhoodSafe int    `json:"neighborhood_safe,omitempty"`
	StudyNoise       int    `json:"study_noise,omitempty"`
	GeneralHealth    int    `json:"general_health,omitempty"`
	StudyHours       int    `json:"study_hours,omitempty"`
	SchoolAttendance int    `json:"school_attendance,omitempty"`
	FamilySupport    int    `json:"family_support,omitempty"`
	PeerIntegration  int    `json:"peer_integration,omitempty"`
	Motivation       int    `json:"motivation,omitempty"`
	Bullying         bool   `json:"bullying,omitempty"`
	DrugExposure     string `json:"drug_exposure,omitempty"`
}

func (s surveyRequest) validate() error {
	if strings.TrimSpace(s.StudentID) == "" {
		return ErrBadRequest
	}
	return nil
}

// HandlePost handles POST /surveys requests.
func (h *SurveysHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req surveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidBody)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	sub := model.SurveySubmission{
		StudentID:        req.StudentID,
		Selections:       req.Selections,
		Age:              req.Age,
		Siblings:         req.Siblings,
		NeighborhoodSafe: req.NeighborhoodSafe,
		StudyNoise:       req.StudyNoise,
		GeneralHealth:    req.GeneralHealth,
		StudyHours:       req.StudyHours,
		SchoolAttendance: req.SchoolAttendance,
		FamilySupport:    req.FamilySupport,
		PeerIntegration:  req.PeerIntegration,
		Motivation:       req.Motivation,
		Bullying:         req.Bullying,
		DrugExposure:     req.DrugExposure,
	}
	stored, err := h.deps.SubmitSurvey(r.Context(), sub)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// HandleGet handles GET /surveys/{student_id} requests.
func (h *SurveysHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathParam(r, "/surveys/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	surveys, err := h.deps.ListSurveys(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}
