// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vigia-edu/vigia/internal/adapters/repository"
	"github.com/vigia-edu/vigia/internal/domain/area"
	"github.com/vigia-edu/vigia/internal/domain/model"
	"github.com/vigia-edu/vigia/internal/domain/risk"
	"github.com/vigia-edu/vigia/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AddStudent(ctx context.Context, s model.Student) error
	GetStudent(ctx context.Context, id string) (model.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	ListStudents(ctx context.Context) ([]model.Student, error)

	RecordObservation(ctx context.Context, o model.Observation) (model.Observation, error)
	ListObservations(ctx context.Context, studentID string) ([]model.Observation, error)

	SubmitSurvey(ctx context.Context, s model.SurveySubmission) (model.SurveySubmission, error)
	ListSurveys(ctx context.Context, studentID string) ([]model.SurveySubmission, error)

	ComputeRisk(ctx context.Context, id string) (types.RiskAssessment, error)
	AssignArea(ctx context.Context, id string) (types.AreaRecommendation, error)
	EvaluateAll(ctx context.Context) ([]types.RiskAssessment, error)
	TopRisk(ctx context.Context, n int) ([]types.RankingEntry, error)
	GetStats(ctx context.Context) types.Stats
	Areas(ctx context.Context) []area.Area
	RenderProfile(ctx context.Context, id string) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	studentsHandler     *StudentsHandler
	observationsHandler *ObservationsHandler
	surveysHandler      *SurveysHandler
	riskHandler         *RiskHandler
	rankingHandler      *RankingHandler
	areaHandler         *AreaHandler
	profileHandler      *ProfileHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(deps),
		studentsHandler:     NewStudentsHandler(deps),
		observationsHandler: NewObservationsHandler(deps),
		surveysHandler:      NewSurveysHandler(deps),
		riskHandler:         NewRiskHandler(deps),
		rankingHandler:      NewRankingHandler(deps),
		areaHandler:         NewAreaHandler(deps),
		profileHandler:      NewProfileHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/students", MetricsMiddleware(s.studentsHandler.HandleCollection, "students"))
	mux.HandleFunc("/students/", MetricsMiddleware(s.studentsHandler.HandleItem, "student"))
	mux.HandleFunc("/observations", MetricsMiddleware(s.observationsHandler.HandlePost, "observations"))
	mux.HandleFunc("/observations/", MetricsMiddleware(s.observationsHandler.HandleGet, "observations"))
	mux.HandleFunc("/surveys", MetricsMiddleware(s.surveysHandler.HandlePost, "surveys"))
	mux.HandleFunc("/surveys/", MetricsMiddleware(s.surveysHandler.HandleGet, "surveys"))
	mux.HandleFunc("/risk/", MetricsMiddleware(s.riskHandler.HandleGetRisk, "risk"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.rankingHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/area/", MetricsMiddleware(s.areaHandler.HandleGetArea, "area"))
	mux.HandleFunc("/areas", MetricsMiddleware(s.areaHandler.HandleListAreas, "areas"))
	mux.HandleFunc("/profile/", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service-layer errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrEmptyID),
		errors.Is(err, repository.ErrNoStudent),
		errors.Is(err, risk.ErrInvalidDomain):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// pathParam extracts the single path segment after prefix, rejecting
// nested paths.
func pathParam(r *http.Request, prefix string) (string, bool) {
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return "", false
	}
	return p, true
}
