package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// StudentsDependencies defines the interface for roster operations.
type StudentsDependencies interface {
	AddStudent(ctx context.Context, s model.Student) error
	GetStudent(ctx context.Context, id string) (model.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	ListStudents(ctx context.Context) ([]model.Student, error)
}

// StudentsHandler handles roster requests.
type StudentsHandler struct {
	deps StudentsDependencies
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(deps StudentsDependencies) *StudentsHandler {
	return &StudentsHandler{deps: deps}
}

// studentRequest mirrors the JSON schema for PUT/POST student rows.
type studentRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Grade   string `json:"grade"`
	Section string `json:"section"`
}

func (s studentRequest) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrBadRequest
	}
	return nil
}

// HandleCollection handles GET and POST /students requests.
func (h *StudentsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		students, err := h.deps.ListStudents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, students)
	case http.MethodPost:
		var req studentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidBody)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		st := model.Student{
			ID:      req.ID,
			Name:    req.Name,
			Age:     req.Age,
			Grade:   req.Grade,
			Section: req.Section,
		}
		if err := h.deps.AddStudent(r.Context(), st); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, st)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles GET and DELETE /students/{id} requests.
func (h *StudentsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, "/students/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		st, err := h.deps.GetStudent(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	case http.MethodDelete:
		if err := h.deps.DeleteStudent(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
