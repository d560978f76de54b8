// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vigia-edu/vigia/internal/adapters/repository"
	"github.com/vigia-edu/vigia/internal/domain/aggregate"
	"github.com/vigia-edu/vigia/internal/domain/area"
	"github.com/vigia-edu/vigia/internal/domain/model"
	"github.com/vigia-edu/vigia/internal/domain/profile"
	"github.com/vigia-edu/vigia/internal/domain/risk"
	"github.com/vigia-edu/vigia/internal/domain/sentiment"
	"github.com/vigia-edu/vigia/internal/domain/survey"
	"github.com/vigia-edu/vigia/internal/domain/types"
	"github.com/vigia-edu/vigia/pkg/logger"
	"github.com/vigia-edu/vigia/pkg/metrics"
)

// Lifecycle errors.
var (
	ErrAlreadyStarted = errors.New("service already started")
	ErrNotStarted     = errors.New("service not started")
)

const defaultMaxRankingLimit = 100

// Service wires the repository, the aggregation pipeline and the risk
// and area engines behind the operations the HTTP API consumes.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	aggregator *aggregate.Aggregator
	riskEngine *risk.Engine
	areaEngine *area.Engine
	estimator  sentiment.Estimator

	// Configuration
	maxRankingLimit int
	riskOpts        []risk.Option

	// State
	started bool
	ranking []types.RankingEntry
	stats   types.Stats

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing repository.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithEstimator replaces the heuristic sentiment estimator, usually
// with a trained classifier.
func WithEstimator(est sentiment.Estimator) Option {
	return func(s *Service) {
		if est != nil {
			s.estimator = est
		}
	}
}

// WithRiskVariant selects the risk formula preset.
func WithRiskVariant(v risk.Variant) Option {
	return func(s *Service) {
		s.riskOpts = append(s.riskOpts, risk.WithVariant(v))
	}
}

// WithHighRiskThreshold overrides the Rd threshold for the high-risk flag.
func WithHighRiskThreshold(t float64) Option {
	return func(s *Service) {
		s.riskOpts = append(s.riskOpts, risk.WithHighRiskThreshold(t))
	}
}

// WithAtRiskGradeThreshold overrides the grade-only at-risk threshold.
func WithAtRiskGradeThreshold(t float64) Option {
	return func(s *Service) {
		s.riskOpts = append(s.riskOpts, risk.WithAtRiskGradeThreshold(t))
	}
}

// WithMaxRankingLimit caps the page size served by the ranking endpoint.
func WithMaxRankingLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRankingLimit = n
		}
	}
}

// New creates a service with an in-memory store and default engines.
func New(opts ...Option) *Service {
	s := &Service{
		store:           repository.NewMemStore(),
		estimator:       sentiment.NewHeuristic(),
		areaEngine:      area.NewEngine(),
		maxRankingLimit: defaultMaxRankingLimit,
		logger:          logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.riskEngine = risk.New(s.riskOpts...)
	s.aggregator = aggregate.New(aggregate.WithEstimator(s.estimator))
	return s
}

// Start marks the service ready and runs the first batch evaluation so
// the ranking and stats endpoints serve data immediately.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	if _, err := s.EvaluateAll(ctx); err != nil {
		s.logger.Warn(ctx, "initial evaluation failed", logger.Error(err))
	}
	s.logger.Info(ctx, "scoring service started",
		logger.String("risk_variant", string(s.riskEngine.Variant())),
		logger.Int("max_ranking_limit", s.maxRankingLimit))
	return nil
}

// Stop releases the backing store.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	if err := s.store.Close(); err != nil {
		s.logger.Error(ctx, "store close failed", logger.Error(err))
	}
	s.logger.Info(ctx, "scoring service stopped")
}

// AddStudent upserts a student row.
func (s *Service) AddStudent(ctx context.Context, st model.Student) error {
	if err := s.store.UpsertStudent(ctx, st); err != nil {
		metrics.RecordRepositoryError()
		return err
	}
	return nil
}

// GetStudent returns one student by id.
func (s *Service) GetStudent(ctx context.Context, id string) (model.Student, error) {
	return s.store.GetStudent(ctx, id)
}

// DeleteStudent removes a student and its dependent rows.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	return s.store.DeleteStudent(ctx, id)
}

// ListStudents returns the roster ordered by id.
func (s *Service) ListStudents(ctx context.Context) ([]model.Student, error) {
	return s.store.ListStudents(ctx)
}

// ReplaceAcademicRecords swaps the academic dataset, used by the CSV
// bootstrap path.
func (s *Service) ReplaceAcademicRecords(ctx context.Context, records []model.AcademicRecord) error {
	return s.store.ReplaceAcademicRecords(ctx, records)
}

// RecordObservation appends a qualitative observation. A zero date is
// stamped with the current time.
func (s *Service) RecordObservation(ctx context.Context, o model.Observation) (model.Observation, error) {
	if o.Date.IsZero() {
		o.Date = time.Now().UTC()
	}
	stored, err := s.store.AppendObservation(ctx, o)
	if err != nil {
		metrics.RecordRepositoryError()
		return model.Observation{}, err
	}
	metrics.RecordObservationStored()
	return stored, nil
}

// ListObservations returns a student's observations in append order.
func (s *Service) ListObservations(ctx context.Context, studentID string) ([]model.Observation, error) {
	return s.store.ListObservations(ctx, studentID)
}

// SubmitSurvey scores the submission's cluster selections and appends
// it to the student's history. Submissions are immutable; a
// resubmission is a new row.
func (s *Service) SubmitSurvey(ctx context.Context, sub model.SurveySubmission) (model.SurveySubmission, error) {
	if _, err := s.store.GetStudent(ctx, sub.StudentID); err != nil {
		return model.SurveySubmission{}, err
	}
	scores, err := survey.ScoreAll(sub.Selections)
	if err != nil {
		return model.SurveySubmission{}, fmt.Errorf("score survey: %w", err)
	}
	sub.ClusterScores = scores
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	stored, err := s.store.AppendSurvey(ctx, sub)
	if err != nil {
		metrics.RecordRepositoryError()
		return model.SurveySubmission{}, err
	}
	metrics.RecordSurveyStored()
	return stored, nil
}

// ListSurveys returns a student's submissions in append order.
func (s *Service) ListSurveys(ctx context.Context, studentID string) ([]model.SurveySubmission, error) {
	return s.store.ListSurveys(ctx, studentID)
}

// featureRow assembles the feature row for one student from current
// stored state.
func (s *Service) featureRow(ctx context.Context, id string) (model.FeatureRow, error) {
	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return model.FeatureRow{}, err
	}
	records, err := s.store.ListAcademicRecords(ctx, id)
	if err != nil {
		return model.FeatureRow{}, err
	}
	observations, err := s.store.ListObservations(ctx, id)
	if err != nil {
		return model.FeatureRow{}, err
	}
	return s.aggregator.BuildOne(st, records, observations), nil
}

func (s *Service) assess(row model.FeatureRow) (types.RiskAssessment, error) {
	rd, err := s.riskEngine.Score(risk.Input{
		Attendance:   row.Attendance,
		GradeAverage: row.GradeAverage,
		Environment:  row.Environment,
	})
	if err != nil {
		return types.RiskAssessment{}, err
	}
	metrics.RecordRiskComputed()
	return types.RiskAssessment{
		StudentID:    row.StudentID,
		Name:         row.Name,
		Risk:         rd,
		Environment:  row.Environment,
		GradeAverage: row.GradeAverage,
		Attendance:   row.Attendance,
		HighRisk:     s.riskEngine.IsHighRisk(rd),
		AtRiskGrades: s.riskEngine.AtRiskByGrades(row.GradeAverage),
		Partial:      row.Partial,
	}, nil
}

// ComputeRisk evaluates the dropout-risk score for one student from
// current stored state.
func (s *Service) ComputeRisk(ctx context.Context, id string) (types.RiskAssessment, error) {
	row, err := s.featureRow(ctx, id)
	if err != nil {
		return types.RiskAssessment{}, err
	}
	return s.assess(row)
}

// AssignArea recommends exactly one academic area for a student.
func (s *Service) AssignArea(ctx context.Context, id string) (types.AreaRecommendation, error) {
	row, err := s.featureRow(ctx, id)
	if err != nil {
		return types.AreaRecommendation{}, err
	}
	a := s.areaEngine.Assign(row)
	metrics.RecordAreaAssigned(a.Family)
	return types.AreaRecommendation{
		StudentID: row.StudentID,
		AreaID:    a.AreaID,
		AreaName:  a.Name,
		Family:    a.Family,
		Score:     a.Score,
	}, nil
}

// EvaluateAll scores the whole roster, refreshes the cached ranking and
// cohort stats, and returns the assessments in student-ID order. A
// student whose data violates the formula domains is skipped and
// logged, never aborting the batch.
func (s *Service) EvaluateAll(ctx context.Context) ([]types.RiskAssessment, error) {
	start := time.Now()

	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListAllAcademicRecords(ctx)
	if err != nil {
		return nil, err
	}
	observations, err := s.store.ListAllObservations(ctx)
	if err != nil {
		return nil, err
	}

	rows := s.aggregator.Build(students, records, observations)
	assessments := make([]types.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		a, err := s.assess(row)
		if err != nil {
			s.logger.Warn(ctx, "skipping student with invalid inputs",
				logger.String("student_id", row.StudentID), logger.Error(err))
			continue
		}
		assessments = append(assessments, a)
	}

	s.refreshRanking(assessments, len(students), rows)
	metrics.RecordEvaluationRun(time.Since(start).Seconds())
	s.logger.Info(ctx, "batch evaluation complete",
		logger.Int("students", len(students)),
		logger.Int("evaluated", len(assessments)))
	return assessments, nil
}

// refreshRanking rebuilds the cached descending-risk ranking and the
// cohort stats. Ties keep student-ID order, so rank assignment is
// deterministic.
func (s *Service) refreshRanking(assessments []types.RiskAssessment, students int, rows []model.FeatureRow) {
	sorted := append([]types.RiskAssessment(nil), assessments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Risk > sorted[j].Risk })

	ranking := make([]types.RankingEntry, len(sorted))
	var riskSum float64
	highRisk := 0
	for i, a := range sorted {
		ranking[i] = types.RankingEntry{
			Rank:      i + 1,
			StudentID: a.StudentID,
			Name:      a.Name,
			Risk:      a.Risk,
			HighRisk:  a.HighRisk,
		}
		riskSum += a.Risk
		if a.HighRisk {
			highRisk++
		}
	}

	stats := types.Stats{
		Students:  students,
		Evaluated: len(sorted),
		HighRisk:  highRisk,
	}
	if len(sorted) > 0 {
		stats.MeanRisk = riskSum / float64(len(sorted))
	}
	if len(rows) > 0 {
		var grade, att, env float64
		for _, r := range rows {
			grade += r.GradeAverage
			att += r.Attendance
			env += r.Environment
		}
		n := float64(len(rows))
		stats.MeanGradeAvg = grade / n
		stats.MeanAttendance = att / n
		stats.MeanEnvironment = env / n
	}

	s.mu.Lock()
	s.ranking = ranking
	s.stats = stats
	s.mu.Unlock()

	metrics.UpdateStudentsTotal(students)
	metrics.UpdateHighRiskTotal(highRisk)
	metrics.UpdateMeanRisk(stats.MeanRisk)
}

// TopRisk returns the first n entries of the cached ranking. Non-positive
// n means the configured maximum; n is capped at the configured maximum.
func (s *Service) TopRisk(_ context.Context, n int) ([]types.RankingEntry, error) {
	if n <= 0 || n > s.maxRankingLimit {
		n = s.maxRankingLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.ranking) {
		n = len(s.ranking)
	}
	return append([]types.RankingEntry(nil), s.ranking[:n]...), nil
}

// GetStats returns the cohort stats from the latest batch evaluation.
func (s *Service) GetStats(_ context.Context) types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Areas returns the full recommendation catalog.
func (s *Service) Areas(_ context.Context) []area.Area {
	return append([]area.Area(nil), area.Catalog...)
}

// RenderProfile produces the plain-text integral profile for a student
// from the latest survey submission and the observation log.
func (s *Service) RenderProfile(ctx context.Context, id string) (string, error) {
	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return "", err
	}
	observations, err := s.store.ListObservations(ctx, id)
	if err != nil {
		return "", err
	}
	surveys, err := s.store.ListSurveys(ctx, id)
	if err != nil {
		return "", err
	}
	var latest *model.SurveySubmission
	if len(surveys) > 0 {
		latest = &surveys[len(surveys)-1]
	}
	return profile.Render(st, latest, observations), nil
}
