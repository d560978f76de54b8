package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/vigia-edu/vigia/internal/domain/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS students (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	age     INTEGER NOT NULL DEFAULT 0,
	grade   TEXT NOT NULL DEFAULT '',
	section TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS academic_records (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id TEXT NOT NULL,
	subject    TEXT NOT NULL DEFAULT '',
	periods    TEXT NOT NULL DEFAULT '[]',
	final      REAL,
	attendance REAL
);
CREATE INDEX IF NOT EXISTS idx_academic_student ON academic_records(student_id);
CREATE TABLE IF NOT EXISTS observations (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	date       TEXT NOT NULL,
	author     TEXT NOT NULL DEFAULT '',
	text       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_observations_student ON observations(student_id);
CREATE TABLE IF NOT EXISTS surveys (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	student_id   TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_surveys_student ON surveys(student_id);
`

// SQLStore is the SQLite-backed Store. A single file serves the whole
// service; SQLite serializes concurrent writers, which covers the
// single-writer discipline the persistence layer must provide.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL opens (or creates) the SQLite database at dsn and ensures the
// schema exists.
func OpenSQL(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		dsn = "file:vigia.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// UpsertStudent inserts or replaces a student row.
func (s *SQLStore) UpsertStudent(ctx context.Context, st model.Student) error {
	if st.ID == "" {
		return ErrEmptyID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (id, name, age, grade, section) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, age=excluded.age,
			grade=excluded.grade, section=excluded.section`,
		st.ID, st.Name, st.Age, st.Grade, st.Section)
	return err
}

// GetStudent returns the student with the given id.
func (s *SQLStore) GetStudent(ctx context.Context, id string) (model.Student, error) {
	var st model.Student
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, age, grade, section FROM students WHERE id = ?`, id).
		Scan(&st.ID, &st.Name, &st.Age, &st.Grade, &st.Section)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Student{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return st, err
}

// DeleteStudent removes a student and its dependent rows.
func (s *SQLStore) DeleteStudent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	for _, q := range []string{
		`DELETE FROM academic_records WHERE student_id = ?`,
		`DELETE FROM observations WHERE student_id = ?`,
		`DELETE FROM surveys WHERE student_id = ?`,
	} {
		if _, err := s.db.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}

// ListStudents returns every student ordered by id.
func (s *SQLStore) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, age, grade, section FROM students ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Age, &st.Grade, &st.Section); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// ReplaceAcademicRecords swaps the whole academic dataset in one
// transaction.
func (s *SQLStore) ReplaceAcademicRecords(ctx context.Context, records []model.AcademicRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM academic_records`); err != nil {
		return err
	}
	for _, r := range records {
		if r.StudentID == "" {
			return ErrEmptyID
		}
		periods, err := json.Marshal(r.Periods)
		if err != nil {
			return err
		}
		var final, attendance sql.NullFloat64
		if r.Final != nil {
			final = sql.NullFloat64{Float64: *r.Final, Valid: true}
		}
		if r.Attendance != nil {
			attendance = sql.NullFloat64{Float64: *r.Attendance, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO academic_records (student_id, subject, periods, final, attendance)
			VALUES (?, ?, ?, ?, ?)`,
			r.StudentID, r.Subject, string(periods), final, attendance); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanAcademicRows(rows *sql.Rows) ([]model.AcademicRecord, error) {
	var out []model.AcademicRecord
	for rows.Next() {
		var (
			r          model.AcademicRecord
			periods    string
			final      sql.NullFloat64
			attendance sql.NullFloat64
		)
		if err := rows.Scan(&r.StudentID, &r.Subject, &periods, &final, &attendance); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(periods), &r.Periods); err != nil {
			return nil, err
		}
		if final.Valid {
			v := final.Float64
			r.Final = &v
		}
		if attendance.Valid {
			v := attendance.Float64
			r.Attendance = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListAcademicRecords returns the academic rows for one student.
func (s *SQLStore) ListAcademicRecords(ctx context.Context, studentID string) ([]model.AcademicRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, subject, periods, final, attendance
		FROM academic_records WHERE student_id = ? ORDER BY seq`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAcademicRows(rows)
}

// ListAllAcademicRecords returns the full academic dataset.
func (s *SQLStore) ListAllAcademicRecords(ctx context.Context) ([]model.AcademicRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, subject, periods, final, attendance
		FROM academic_records ORDER BY student_id, seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAcademicRows(rows)
}

// AppendObservation stores a new observation.
func (s *SQLStore) AppendObservation(ctx context.Context, o model.Observation) (model.Observation, error) {
	if o.StudentID == "" {
		return model.Observation{}, ErrEmptyID
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if _, err := s.GetStudent(ctx, o.StudentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Observation{}, fmt.Errorf("%s: %w", o.StudentID, ErrNoStudent)
		}
		return model.Observation{}, err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (id, student_id, date, author, text)
		VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.StudentID, o.Date.Format(time.RFC3339), o.Author, o.Text)
	return o, err
}

func scanObservationRows(rows *sql.Rows) ([]model.Observation, error) {
	var out []model.Observation
	for rows.Next() {
		var (
			o    model.Observation
			date string
		)
		if err := rows.Scan(&o.ID, &o.StudentID, &date, &o.Author, &o.Text); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			o.Date = t
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListObservations returns a student's observations in append order.
func (s *SQLStore) ListObservations(ctx context.Context, studentID string) ([]model.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, student_id, date, author, text
		FROM observations WHERE student_id = ? ORDER BY seq`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservationRows(rows)
}

// ListAllObservations returns every observation.
func (s *SQLStore) ListAllObservations(ctx context.Context) ([]model.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, student_id, date, author, text
		FROM observations ORDER BY student_id, seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservationRows(rows)
}

// AppendSurvey stores a survey submission as an immutable row.
func (s *SQLStore) AppendSurvey(ctx context.Context, sub model.SurveySubmission) (model.SurveySubmission, error) {
	if sub.StudentID == "" {
		return model.SurveySubmission{}, ErrEmptyID
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return model.SurveySubmission{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO surveys (id, student_id, submitted_at, payload)
		VALUES (?, ?, ?, ?)`,
		sub.ID, sub.StudentID, sub.SubmittedAt.Format(time.RFC3339), string(payload))
	return sub, err
}

// ListSurveys returns a student's submissions in append order.
func (s *SQLStore) ListSurveys(ctx context.Context, studentID string) ([]model.SurveySubmission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM surveys WHERE student_id = ? ORDER BY seq`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SurveySubmission
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var sub model.SurveySubmission
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error { return s.db.Close() }
