// Package repository owns the persisted student state behind an explicit
// store interface. Engines borrow read-only views; nothing reaches the
// tables through ambient globals.
package repository

import (
	"context"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// Store provides read/write access to students, academic records,
// observations and survey submissions. Students are upserted; surveys
// and observations are append-only.
type Store interface {
	UpsertStudent(ctx context.Context, s model.Student) error
	GetStudent(ctx context.Context, id string) (model.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	ListStudents(ctx context.Context) ([]model.Student, error)

	ReplaceAcademicRecords(ctx context.Context, records []model.AcademicRecord) error
	ListAcademicRecords(ctx context.Context, studentID string) ([]model.AcademicRecord, error)
	ListAllAcademicRecords(ctx context.Context) ([]model.AcademicRecord, error)

	AppendObservation(ctx context.Context, o model.Observation) (model.Observation, error)
	ListObservations(ctx context.Context, studentID string) ([]model.Observation, error)
	ListAllObservations(ctx context.Context) ([]model.Observation, error)

	AppendSurvey(ctx context.Context, s model.SurveySubmission) (model.SurveySubmission, error)
	ListSurveys(ctx context.Context, studentID string) ([]model.SurveySubmission, error)

	Close() error
}
