package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// MemStore is the in-memory Store used for tests and single-process
// deployments without persistence. Writes are serialized behind one
// mutex; readers get copies, never internal slices.
type MemStore struct {
	mu sync.RWMutex

	students     map[string]model.Student
	records      map[string][]model.AcademicRecord
	observations map[string][]model.Observation
	surveys      map[string][]model.SurveySubmission
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		students:     make(map[string]model.Student),
		records:      make(map[string][]model.AcademicRecord),
		observations: make(map[string][]model.Observation),
		surveys:      make(map[string][]model.SurveySubmission),
	}
}

// UpsertStudent inserts or replaces a student row.
func (m *MemStore) UpsertStudent(_ context.Context, s model.Student) error {
	if s.ID == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[s.ID] = s
	return nil
}

// GetStudent returns the student with the given id.
func (m *MemStore) GetStudent(_ context.Context, id string) (model.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[id]
	if !ok {
		return model.Student{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s, nil
}

// DeleteStudent removes a student and the rows that reference it.
func (m *MemStore) DeleteStudent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	delete(m.students, id)
	delete(m.records, id)
	delete(m.observations, id)
	delete(m.surveys, id)
	return nil
}

// ListStudents returns every student ordered by id.
func (m *MemStore) ListStudents(_ context.Context) ([]model.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReplaceAcademicRecords swaps the whole academic dataset.
func (m *MemStore) ReplaceAcademicRecords(_ context.Context, records []model.AcademicRecord) error {
	grouped := make(map[string][]model.AcademicRecord)
	for _, r := range records {
		if r.StudentID == "" {
			return ErrEmptyID
		}
		grouped[r.StudentID] = append(grouped[r.StudentID], r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = grouped
	return nil
}

// ListAcademicRecords returns the academic rows for one student.
func (m *MemStore) ListAcademicRecords(_ context.Context, studentID string) ([]model.AcademicRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.AcademicRecord(nil), m.records[studentID]...), nil
}

// ListAllAcademicRecords returns the full academic dataset ordered by
// student id.
func (m *MemStore) ListAllAcademicRecords(_ context.Context) ([]model.AcademicRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []model.AcademicRecord
	for _, id := range ids {
		out = append(out, m.records[id]...)
	}
	return out, nil
}

// AppendObservation stores a new observation, generating an id when the
// caller supplied none.
func (m *MemStore) AppendObservation(_ context.Context, o model.Observation) (model.Observation, error) {
	if o.StudentID == "" {
		return model.Observation{}, ErrEmptyID
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[o.StudentID]; !ok {
		return model.Observation{}, fmt.Errorf("%s: %w", o.StudentID, ErrNoStudent)
	}
	m.observations[o.StudentID] = append(m.observations[o.StudentID], o)
	return o, nil
}

// ListObservations returns a student's observations in append order.
func (m *MemStore) ListObservations(_ context.Context, studentID string) ([]model.Observation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Observation(nil), m.observations[studentID]...), nil
}

// ListAllObservations returns every observation ordered by student id,
// preserving append order within a student.
func (m *MemStore) ListAllObservations(_ context.Context) ([]model.Observation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.observations))
	for id := range m.observations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []model.Observation
	for _, id := range ids {
		out = append(out, m.observations[id]...)
	}
	return out, nil
}

// AppendSurvey stores a survey submission. Submissions are never
// updated; a resubmission is a new row.
func (m *MemStore) AppendSurvey(_ context.Context, s model.SurveySubmission) (model.SurveySubmission, error) {
	if s.StudentID == "" {
		return model.SurveySubmission{}, ErrEmptyID
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surveys[s.StudentID] = append(m.surveys[s.StudentID], s)
	return s, nil
}

// ListSurveys returns a student's submissions in append order.
func (m *MemStore) ListSurveys(_ context.Context, studentID string) ([]model.SurveySubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.SurveySubmission(nil), m.surveys[studentID]...), nil
}

// Close implements Store; the in-memory store has nothing to release.
func (m *MemStore) Close() error { return nil }
