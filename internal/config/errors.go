package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr        = errors.New("addr must not be empty")
	ErrUnknownStore     = errors.New("store must be memory or sqlite")
	ErrUnknownPreset    = errors.New("risk_preset must be A or B")
	ErrUnknownSentiment = errors.New("sentiment must be heuristic or model")
	ErrBadThreshold     = errors.New("threshold outside valid range")
)
