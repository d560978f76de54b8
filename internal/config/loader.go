package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VIGIA_CONFIG is set
//  3. env (prefix VIGIA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("VIGIA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Environment variables: VIGIA_ADDR, VIGIA_RISK_PRESET, ...
	// Map env keys like VIGIA_RISK_PRESET -> risk_preset (flat keys).
	envProvider := env.Provider("VIGIA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "vigia_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	switch strings.ToLower(c.Store) {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	switch strings.ToUpper(c.RiskPreset) {
	case "A", "B":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreset, c.RiskPreset)
	}
	switch strings.ToLower(c.Sentiment) {
	case "heuristic", "model":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSentiment, c.Sentiment)
	}
	if c.HighRiskThreshold <= 0 || c.HighRiskThreshold > 1 {
		return fmt.Errorf("%w: high_risk_threshold %.3f", ErrBadThreshold, c.HighRiskThreshold)
	}
	if c.AtRiskGradeThreshold <= 0 || c.AtRiskGradeThreshold > 100 {
		return fmt.Errorf("%w: at_risk_grade_threshold %.1f", ErrBadThreshold, c.AtRiskGradeThreshold)
	}
	return nil
}
