// Package metrics provides Prometheus metrics for the vigia scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring metrics.
	riskComputed    prometheus.Counter
	areaAssigned    *prometheus.CounterVec
	evaluationRuns  prometheus.Counter
	evaluationSecs  prometheus.Histogram
	sentimentErrors prometheus.Counter

	// Dataset state.
	studentsTotal  prometheus.Gauge
	highRiskTotal  prometheus.Gauge
	meanRisk       prometheus.Gauge
	surveysStored  prometheus.Counter
	observationLog prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Repository metrics.
	repositoryErrors prometheus.Counter
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry keeps our metrics separate from the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vigia",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	auto := promauto.With(m.registry)

	m.riskComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "risk_computed_total",
		Help:      "Total number of dropout-risk computations",
	})

	m.areaAssigned = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "area_assigned_total",
		Help:      "Total number of area assignments, labeled by winning family",
	}, []string{"family"})

	m.evaluationRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_runs_total",
		Help:      "Total number of full-cohort evaluation passes",
	})

	m.evaluationSecs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of full-cohort evaluation passes",
		Buckets:   m.histogramBuckets,
	})

	m.sentimentErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sentiment_errors_total",
		Help:      "Total number of sentiment estimation failures",
	})

	m.studentsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "students_total",
		Help:      "Number of students currently tracked",
	})

	m.highRiskTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_risk_students",
		Help:      "Number of students above the high-risk threshold",
	})

	m.meanRisk = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mean_risk",
		Help:      "Mean dropout-risk score across the cohort",
	})

	m.surveysStored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "surveys_submitted_total",
		Help:      "Total number of contextual survey submissions stored",
	})

	m.observationLog = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observations_recorded_total",
		Help:      "Total number of teacher observations recorded",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})

	m.repositoryErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_errors_total",
		Help:      "Total number of repository operation failures",
	})
}

// GetRegistry returns the gatherer backing the custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordRiskComputed increments the risk computation counter.
func RecordRiskComputed() { globalManager.riskComputed.Inc() }

// RecordAreaAssigned increments the assignment counter for a family.
func RecordAreaAssigned(family string) { globalManager.areaAssigned.WithLabelValues(family).Inc() }

// RecordEvaluationRun records a full-cohort evaluation pass and its duration.
func RecordEvaluationRun(seconds float64) {
	globalManager.evaluationRuns.Inc()
	globalManager.evaluationSecs.Observe(seconds)
}

// RecordSentimentError increments the sentiment failure counter.
func RecordSentimentError() { globalManager.sentimentErrors.Inc() }

// UpdateStudentsTotal sets the tracked-student gauge.
func UpdateStudentsTotal(n int) { globalManager.studentsTotal.Set(float64(n)) }

// UpdateHighRiskTotal sets the high-risk student gauge.
func UpdateHighRiskTotal(n int) { globalManager.highRiskTotal.Set(float64(n)) }

// UpdateMeanRisk sets the cohort mean risk gauge.
func UpdateMeanRisk(v float64) { globalManager.meanRisk.Set(v) }

// RecordSurveyStored increments the survey submission counter.
func RecordSurveyStored() { globalManager.surveysStored.Inc() }

// RecordObservationStored increments the observation counter.
func RecordObservationStored() { globalManager.observationLog.Inc() }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordRepositoryError increments the repository failure counter.
func RecordRepositoryError() { globalManager.repositoryErrors.Inc() }
