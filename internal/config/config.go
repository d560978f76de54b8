// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the repository backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLiteDSN is the data source name used when Store is sqlite.
	SQLiteDSN string `koanf:"sqlite_dsn"`

	// DatasetsDir points at the CSV bootstrap directory; empty disables
	// the bootstrap load.
	DatasetsDir string `koanf:"datasets_dir"`

	// RiskPreset selects the risk formula variant: A or B.
	RiskPreset string `koanf:"risk_preset"`

	// HighRiskThreshold is the Rd cutoff for the high-risk flag.
	HighRiskThreshold float64 `koanf:"high_risk_threshold"`

	// AtRiskGradeThreshold is the grade-only at-risk cutoff.
	AtRiskGradeThreshold float64 `koanf:"at_risk_grade_threshold"`

	// GradeScaleCutoff marks grades at or below it as 0-10 values to be
	// rescaled to 0-100 during ingestion. Zero disables rescaling.
	GradeScaleCutoff float64 `koanf:"grade_scale_cutoff"`

	// MaxRankingLimit caps GET /ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// Sentiment selects the environment estimator: heuristic or model.
	Sentiment string `koanf:"sentiment"`

	// CorpusPath is the labeled CSV used to train the model estimator.
	CorpusPath string `koanf:"corpus_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		Store:                "memory",
		SQLiteDSN:            "file:vigia.db?cache=shared&mode=rwc",
		RiskPreset:           "B",
		HighRiskThreshold:    0.6,
		AtRiskGradeThreshold: 60,
		GradeScaleCutoff:     10,
		MaxRankingLimit:      100,
		Sentiment:            "heuristic",
	}
}
