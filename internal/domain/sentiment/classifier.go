package sentiment

import (
	"math"
	"strings"

	"github.com/vigia-edu/vigia/internal/domain/textscore"
)

// Training hyperparameters. Fixed values keep fitting deterministic:
// zero-initialized weights, full-batch gradient steps, no shuffling.
const (
	trainIterations = 500
	learningRate    = 0.5
)

// Sample is one labeled example of the training corpus.
type Sample struct {
	Text     string
	Positive bool
}

// Classifier is a logistic regression over keyword-presence features.
// Once trained it is immutable and safe for concurrent use.
type Classifier struct {
	weights []float64
	bias    float64
}

// Train fits a classifier on the labeled corpus. The feature vector is
// the presence of each positive and negative keyword, the same
// vocabulary the heuristic uses. Returns ErrEmptyCorpus when samples is
// empty.
func Train(samples []Sample) (*Classifier, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyCorpus
	}

	features := make([][]float64, len(samples))
	labels := make([]float64, len(samples))
	for i, s := range samples {
		features[i] = featurize(s.Text)
		if s.Positive {
			labels[i] = 1
		}
	}

	dim := len(PositiveKeywords) + len(NegativeKeywords)
	w := make([]float64, dim)
	var b float64
	n := float64(len(samples))

	for iter := 0; iter < trainIterations; iter++ {
		gradW := make([]float64, dim)
		var gradB float64
		for i, x := range features {
			p := sigmoid(dot(w, x) + b)
			diff := p - labels[i]
			for j, xj := range x {
				gradW[j] += diff * xj
			}
			gradB += diff
		}
		for j := range w {
			w[j] -= learningRate * gradW[j] / n
		}
		b -= learningRate * gradB / n
	}

	return &Classifier{weights: w, bias: b}, nil
}

// Estimate implements Estimator.
func (c *Classifier) Estimate(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return Neutral
	}
	return sigmoid(dot(c.weights, featurize(text)) + c.bias)
}

// featurize builds the presence vector: positive keywords first, then
// negative keywords.
func featurize(text string) []float64 {
	normalized := textscore.Normalize(text)
	x := make([]float64, 0, len(PositiveKeywords)+len(NegativeKeywords))
	for _, k := range PositiveKeywords {
		x = append(x, boolToFloat(strings.Contains(normalized, k)))
	}
	for _, k := range NegativeKeywords {
		x = append(x, boolToFloat(strings.Contains(normalized, k)))
	}
	return x
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
