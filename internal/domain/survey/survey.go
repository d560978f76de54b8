// Package survey computes normalized indicators from weighted survey answers.
//
// Each cluster of the contextual form is a fixed table of option weights.
// The indicator for a cluster is the sum of the weights of the selected
// options, normalized by the cluster's weight total so the result always
// lands in [0,1]. Clusters that carry a deliberate zero-weight "none"
// option normalize against max(total, 1) so selecting only that option
// cannot inflate the score.
package survey

import (
	"errors"
	"fmt"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// ErrInvalidWeight reports a weight table outside its documented domain.
var ErrInvalidWeight = errors.New("invalid cluster weight")

// OptionWeight binds one option name to its non-negative weight.
type OptionWeight struct {
	Option string
	Weight float64
}

// Cluster is one weighted option group of the contextual form.
type Cluster struct {
	Name    string
	Options []OptionWeight

	// ZeroSafe marks clusters whose "none" option has weight zero; their
	// normalization denominator is max(total, 1).
	ZeroSafe bool
}

// total returns the sum of all option weights in the cluster.
func (c Cluster) total() float64 {
	var t float64
	for _, ow := range c.Options {
		t += ow.Weight
	}
	return t
}

// Score computes the cluster indicator for the given selection state.
// Selections of options outside this cluster are ignored; exclusivity
// between options is the form's contract, not enforced here.
func (c Cluster) Score(selections map[string]bool) (model.Indicator, error) {
	var raw float64
	for _, ow := range c.Options {
		if ow.Weight < 0 {
			return model.Indicator{}, fmt.Errorf("cluster %s option %s: %w", c.Name, ow.Option, ErrInvalidWeight)
		}
		if selections[ow.Option] {
			raw += ow.Weight
		}
	}

	denom := c.total()
	if c.ZeroSafe && denom < 1.0 {
		denom = 1.0
	}
	if denom == 0 {
		return model.Indicator{}, fmt.Errorf("cluster %s has no weight mass: %w", c.Name, ErrInvalidWeight)
	}

	return model.Indicator{Raw: raw, Normalized: raw / denom}, nil
}

// ScoreAll computes every cluster indicator for a submission's selections.
func ScoreAll(selections map[string]bool) (map[string]model.Indicator, error) {
	out := make(map[string]model.Indicator, len(Clusters))
	for _, c := range Clusters {
		ind, err := c.Score(selections)
		if err != nil {
			return nil, err
		}
		out[c.Name] = ind
	}
	return out, nil
}
