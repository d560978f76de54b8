// Package sentiment estimates how positive the classroom environment
// described by observation text is, as a probability-like value in [0,1].
//
// Two interchangeable strategies implement the same contract: a keyword
// heuristic and a logistic classifier trained on a small labeled corpus.
// Both return exactly 0.5 for empty or whitespace-only input and are
// monotonic in the balance of positive vs negative keywords.
package sentiment

import (
	"errors"
	"strings"

	"github.com/vigia-edu/vigia/internal/domain/textscore"
)

// ErrEmptyCorpus reports a training run that received zero labeled
// examples. Training must fail loudly rather than hand back a model
// that silently answers 0.5.
var ErrEmptyCorpus = errors.New("empty training corpus")

// Neutral is the score returned for missing or empty text.
const Neutral = 0.5

// Estimator scores the environment described by a text.
type Estimator interface {
	// Estimate returns a value in [0,1]; 1 is maximally positive,
	// 0 maximally negative, 0.5 neutral/unknown.
	Estimate(text string) float64
}

// PositiveKeywords and NegativeKeywords are the shared feature
// vocabulary of both strategies, in normalized (accent-free) form.
var (
	PositiveKeywords = []string{
		"participativo", "atento", "motivacion", "esfuerzo", "responsable",
		"colaborador", "proactivo", "excelente", "comprometido", "constante",
		"interes", "aprendizaje", "positivo", "tranquilo", "actitud",
	}
	// Stems only: "problema" already matches "problemas" by substring,
	// so plural forms never appear as separate entries.
	NegativeKeywords = []string{
		"desinteres", "falta", "problema", "conflicto", "apatia",
		"incumplimiento", "excusas", "derrotista", "inapropiado",
		"minimiza", "estres", "dificultad", "ansiedad", "bullying",
		"desmotivado",
	}
)

// keywordCounts returns how many keywords of each list appear in the
// normalized text. Presence per keyword, not occurrences.
func keywordCounts(normalized string) (pos, neg int) {
	for _, k := range PositiveKeywords {
		if strings.Contains(normalized, k) {
			pos++
		}
	}
	for _, k := range NegativeKeywords {
		if strings.Contains(normalized, k) {
			neg++
		}
	}
	return pos, neg
}

// Heuristic scores text by keyword balance: (pos - neg + 5) / 10,
// clamped to [0,1]. A balanced text sits exactly at the neutral 0.5.
type Heuristic struct{}

// NewHeuristic creates the keyword-balance estimator.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Estimate implements Estimator.
func (h *Heuristic) Estimate(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return Neutral
	}
	pos, neg := keywordCounts(textscore.Normalize(text))
	score := (float64(pos-neg) + 5.0) / 10.0
	return min(1, max(0, score))
}

// Join concatenates observation texts for whole-student estimation.
func Join(texts []string) string {
	return strings.Join(texts, " ")
}
