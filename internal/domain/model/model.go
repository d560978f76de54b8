// Package model contains domain entities passed between layers.
package model

import "time"

// Student is one enrolled student tracked by the institution.
type Student struct {
	ID      string // stable identifier, e.g. "EST-2025-001"
	Name    string
	Age     int
	Grade   string // grade/level label, e.g. "3° Secundaria"
	Section string // classroom/section label
}

// AcademicRecord is one per-subject row of the performance dataset.
// Period grades and the final grade are on a 0-100 scale; ingest rescales
// 0-10 sources before they reach the domain.
type AcademicRecord struct {
	StudentID  string
	Subject    string
	Periods    []float64 // per-period grades (P1..P4)
	Final      *float64  // recorded final grade, nil when not yet closed
	Attendance *float64  // fraction in [0,1], nil when not recorded
}

// Observation is a dated free-text note by a teacher about a student.
type Observation struct {
	ID        string
	StudentID string
	Date      time.Time
	Author    string
	Text      string
}

// SurveySubmission is one contextual survey response. Submissions are
// append-only: a resubmission creates a new row, never an update.
type SurveySubmission struct {
	ID          string
	StudentID   string
	SubmittedAt time.Time

	// Selections maps option names (e.g. "vive_ambos") to their checked
	// state across every cluster of the form.
	Selections map[string]bool

	// Auxiliary numeric answers outside the weighted clusters.
	Age              int
	Siblings         int
	NeighborhoodSafe int // 1-5 slider
	StudyNoise       int // 1-5 slider
	GeneralHealth    int // 1-5 slider
	StudyHours       int // 0-8 slider
	SchoolAttendance int // 1-5 slider
	FamilySupport    int // 1-5 slider
	PeerIntegration  int // 1-5 slider
	Motivation       int // 1-5 slider
	Bullying         bool
	DrugExposure     string // "si", "no", "no_sabe"

	// ClusterScores holds the computed indicator per cluster name.
	ClusterScores map[string]Indicator
}

// Indicator is a weighted cluster score and its [0,1] normalization.
type Indicator struct {
	Raw        float64
	Normalized float64
}

// FeatureRow is the per-student row consumed by the risk and area engines.
type FeatureRow struct {
	StudentID    string
	Name         string
	Age          int
	GradeAverage float64 // 0-100
	Attendance   float64 // fraction in [0,1]
	Observations []string

	// Derived features.
	Environment         float64 // F, in [0,1]
	EnvironmentVariance float64 // std dev of per-observation sentiment
	NumObservations     int
	ScienceAffinity     float64
	QuantAffinity       float64
	SocialAffinity      float64

	// Partial marks rows built with defaults because academic data or
	// observations were missing for this student.
	Partial bool
}
