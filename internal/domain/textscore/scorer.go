package textscore

import "strings"

// match contribution weights.
const (
	baseMatch        = 1.0
	intensifiedMatch = 1.5
	riskPenalty      = 0.2
)

// Affinities holds the risk-adjusted subject affinity scores for a text.
type Affinities struct {
	Science float64
	Quant   float64
	Social  float64
	Risk    float64
}

// Scorer counts lexicon stems in normalized text. It is a pure function
// of text and lexicon; no state is kept between calls.
type Scorer struct {
	lexicon Lexicon
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithLexicon replaces the default lexicon.
func WithLexicon(lex Lexicon) Option {
	return func(s *Scorer) {
		s.lexicon = lex
	}
}

// NewScorer creates a scorer with the default lexicon.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{lexicon: DefaultLexicon}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score sums the contributions of every occurrence of every stem in the
// text. A negation word immediately before a match cancels it; an
// intensifier scales it to 1.5. Without modifiers each occurrence counts
// 1. The result is always >= 0.
func (s *Scorer) Score(text string, stems []string, mods *Modifiers) float64 {
	normalized := Normalize(text)
	if normalized == "" {
		return 0
	}

	var total float64
	for _, stem := range stems {
		if stem == "" {
			continue
		}
		from := 0
		for {
			i := strings.Index(normalized[from:], stem)
			if i < 0 {
				break
			}
			at := from + i
			total += contribution(normalized, at, mods)
			from = at + len(stem)
			if from >= len(normalized) {
				break
			}
		}
	}
	return total
}

func contribution(normalized string, at int, mods *Modifiers) float64 {
	if mods == nil {
		return baseMatch
	}
	prev := precedingWord(normalized, at)
	for _, n := range mods.Negations {
		if prev == n {
			return 0
		}
	}
	for _, in := range mods.Intensifiers {
		if prev == in {
			return intensifiedMatch
		}
	}
	return baseMatch
}

// ScoreAffinities computes the three subject affinities for a text and
// applies the global risk penalty: each affinity loses 0.2 per risk
// expression matched, clamped at zero.
func (s *Scorer) ScoreAffinities(text string) Affinities {
	mods := &s.lexicon.Modifiers
	sc := s.Score(text, s.lexicon.Science, mods)
	sn := s.Score(text, s.lexicon.Quant, mods)
	ss := s.Score(text, s.lexicon.Social, mods)
	risk := s.Score(text, s.lexicon.Risk, nil)

	return Affinities{
		Science: max(0, sc-riskPenalty*risk),
		Quant:   max(0, sn-riskPenalty*risk),
		Social:  max(0, ss-riskPenalty*risk),
		Risk:    risk,
	}
}
