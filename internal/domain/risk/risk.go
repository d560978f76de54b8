// Package risk computes the composite dropout-risk score Rd from
// attendance, grade average and environment score.
package risk

import (
	"errors"
	"fmt"
)

// ErrInvalidDomain reports an input outside its documented domain.
// Domain violations surface to the caller; they are never clamped away.
var ErrInvalidDomain = errors.New("input outside documented domain")

// Variant selects which weighted formula preset the engine applies.
type Variant string

const (
	// VariantA is the form-demo preset:
	// Rd = 0.25·(1−A) + 0.25·max(0,(75−N)/75) + 0.40·(1−F) + 0.10·O,
	// with O defaulting to 1−F when no separate factor is supplied.
	VariantA Variant = "A"

	// VariantB is the dataset-driven preset and the canonical default:
	// Rd = 0.25·(1−A) + 0.25·max(0,75−N)/100 + 0.5·(1−F).
	VariantB Variant = "B"
)

// Default thresholds; both are configuration, not constants of the formula.
const (
	DefaultHighRiskThreshold    = 0.6
	DefaultAtRiskGradeThreshold = 60.0

	gradePivot = 75.0
)

// Input carries the per-student values consumed by the formula.
type Input struct {
	Attendance   float64 // fraction in [0,1]
	GradeAverage float64 // 0-100
	Environment  float64 // F, in [0,1]

	// OtherFactor is Variant A's fourth term; nil means 1−Environment.
	OtherFactor *float64
}

func (in Input) validate() error {
	switch {
	case in.Attendance < 0 || in.Attendance > 1:
		return fmt.Errorf("attendance %.3f: %w", in.Attendance, ErrInvalidDomain)
	case in.GradeAverage < 0 || in.GradeAverage > 100:
		return fmt.Errorf("grade average %.1f: %w", in.GradeAverage, ErrInvalidDomain)
	case in.Environment < 0 || in.Environment > 1:
		return fmt.Errorf("environment %.3f: %w", in.Environment, ErrInvalidDomain)
	}
	if in.OtherFactor != nil && (*in.OtherFactor < 0 || *in.OtherFactor > 1) {
		return fmt.Errorf("other factor %.3f: %w", *in.OtherFactor, ErrInvalidDomain)
	}
	return nil
}

// Engine evaluates the risk formula under a configured preset.
type Engine struct {
	variant     Variant
	highRisk    float64
	atRiskGrade float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithVariant selects the formula preset.
func WithVariant(v Variant) Option {
	return func(e *Engine) {
		if v == VariantA || v == VariantB {
			e.variant = v
		}
	}
}

// WithHighRiskThreshold overrides the Rd threshold for the high-risk flag.
func WithHighRiskThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 && t <= 1 {
			e.highRisk = t
		}
	}
}

// WithAtRiskGradeThreshold overrides the grade-only at-risk threshold.
func WithAtRiskGradeThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 && t <= 100 {
			e.atRiskGrade = t
		}
	}
}

// New creates an engine with Variant B and default thresholds.
func New(opts ...Option) *Engine {
	e := &Engine{
		variant:     VariantB,
		highRisk:    DefaultHighRiskThreshold,
		atRiskGrade: DefaultAtRiskGradeThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Variant returns the configured preset.
func (e *Engine) Variant() Variant { return e.variant }

// Score computes Rd in [0,1]. Inputs are validated first; only the final
// result is clamped, as the formula can exceed [0,1] solely through
// domain violations.
func (e *Engine) Score(in Input) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	var rd float64
	switch e.variant {
	case VariantA:
		other := 1 - in.Environment
		if in.OtherFactor != nil {
			other = *in.OtherFactor
		}
		rd = 0.25*(1-in.Attendance) +
			0.25*max(0, (gradePivot-in.GradeAverage)/gradePivot) +
			0.40*(1-in.Environment) +
			0.10*other
	default: // VariantB
		rd = 0.25*(1-in.Attendance) +
			0.25*max(0, gradePivot-in.GradeAverage)/100 +
			0.5*(1-in.Environment)
	}

	return min(1, max(0, rd)), nil
}

// IsHighRisk classifies an Rd value against the configured threshold.
func (e *Engine) IsHighRisk(rd float64) bool {
	return rd > e.highRisk
}

// AtRiskByGrades is the grade-only classification used by the roster
// views: a student is at risk when the average falls below the threshold.
func (e *Engine) AtRiskByGrades(gradeAverage float64) bool {
	return gradeAverage < e.atRiskGrade
}
