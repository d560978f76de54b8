// Package aggregate joins academic records, attendance and observation
// text into the per-student feature rows consumed by the risk and area
// engines.
package aggregate

import (
	"math"
	"sort"

	"github.com/vigia-edu/vigia/internal/domain/model"
	"github.com/vigia-edu/vigia/internal/domain/sentiment"
	"github.com/vigia-edu/vigia/internal/domain/textscore"
)

// Defaults applied when a student has no academic data. The values keep
// the student visible downstream instead of dropping the row: neutral
// environment, passing-but-unremarkable grade, full attendance.
const (
	defaultGradeAverage = 75.0
	defaultAttendance   = 1.0
)

// Aggregator builds feature rows. It is deterministic: the same input
// tables always produce field-identical output, in student-ID order.
type Aggregator struct {
	estimator sentiment.Estimator
	scorer    *textscore.Scorer
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithEstimator replaces the default heuristic sentiment estimator.
func WithEstimator(est sentiment.Estimator) Option {
	return func(a *Aggregator) {
		if est != nil {
			a.estimator = est
		}
	}
}

// WithScorer replaces the default keyword scorer.
func WithScorer(s *textscore.Scorer) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// New creates an aggregator with the heuristic estimator and default
// lexicon.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		estimator: sentiment.NewHeuristic(),
		scorer:    textscore.NewScorer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build produces one feature row per student. Students missing academic
// data or observations get partial rows with documented defaults rather
// than being dropped; one student's malformed data never aborts the
// batch.
func (a *Aggregator) Build(students []model.Student, records []model.AcademicRecord, observations []model.Observation) []model.FeatureRow {
	recordsByStudent := make(map[string][]model.AcademicRecord)
	for _, r := range records {
		recordsByStudent[r.StudentID] = append(recordsByStudent[r.StudentID], r)
	}
	obsByStudent := make(map[string][]model.Observation)
	for _, o := range observations {
		obsByStudent[o.StudentID] = append(obsByStudent[o.StudentID], o)
	}

	rows := make([]model.FeatureRow, 0, len(students))
	for _, s := range students {
		rows = append(rows, a.buildRow(s, recordsByStudent[s.ID], obsByStudent[s.ID]))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentID < rows[j].StudentID })
	return rows
}

// BuildOne produces the feature row for a single student.
func (a *Aggregator) BuildOne(student model.Student, records []model.AcademicRecord, observations []model.Observation) model.FeatureRow {
	return a.buildRow(student, records, observations)
}

func (a *Aggregator) buildRow(student model.Student, records []model.AcademicRecord, observations []model.Observation) model.FeatureRow {
	row := model.FeatureRow{
		StudentID:    student.ID,
		Name:         student.Name,
		Age:          student.Age,
		GradeAverage: defaultGradeAverage,
		Attendance:   defaultAttendance,
		Environment:  sentiment.Neutral,
	}

	if len(records) == 0 {
		row.Partial = true
	} else {
		var gradeSum, attSum float64
		attN := 0
		for _, r := range records {
			gradeSum += recordGrade(r)
			if r.Attendance != nil {
				attSum += *r.Attendance
				attN++
			}
		}
		row.GradeAverage = gradeSum / float64(len(records))
		// Unrecorded attendance is unknown, not zero; the default only
		// gives way to actually recorded values.
		if attN > 0 {
			row.Attendance = attSum / float64(attN)
		}
	}

	texts := make([]string, 0, len(observations))
	for _, o := range observations {
		texts = append(texts, o.Text)
	}
	row.Observations = texts
	row.NumObservations = len(texts)

	if len(texts) > 0 {
		joined := sentiment.Join(texts)
		row.Environment = a.estimator.Estimate(joined)
		row.EnvironmentVariance = a.environmentStdDev(texts)

		aff := a.scorer.ScoreAffinities(joined)
		row.ScienceAffinity = aff.Science
		row.QuantAffinity = aff.Quant
		row.SocialAffinity = aff.Social
	}

	return row
}

// recordGrade is the recorded final grade when present, else the mean of
// the per-period grades.
func recordGrade(r model.AcademicRecord) float64 {
	if r.Final != nil {
		return *r.Final
	}
	if len(r.Periods) == 0 {
		return defaultGradeAverage
	}
	var sum float64
	for _, p := range r.Periods {
		sum += p
	}
	return sum / float64(len(r.Periods))
}

// environmentStdDev is the population standard deviation of the
// per-observation sentiment scores; zero for fewer than two observations.
func (a *Aggregator) environmentStdDev(texts []string) float64 {
	if len(texts) < 2 {
		return 0
	}
	scores := make([]float64, len(texts))
	var mean float64
	for i, t := range texts {
		scores[i] = a.estimator.Estimate(t)
		mean += scores[i]
	}
	mean /= float64(len(scores))

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(scores)))
}
