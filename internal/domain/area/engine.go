package area

import (
	"strings"

	"github.com/vigia-edu/vigia/internal/domain/model"
	"github.com/vigia-edu/vigia/internal/domain/textscore"
)

// Base score weights: grade average dominates, then attendance, then
// environment, all expressed on a 0-100 scale.
const (
	baseGradeWeight       = 0.5
	baseAttendanceWeight  = 0.3
	baseEnvironmentWeight = 0.2
	affinityBoostFactor   = 0.2
)

// Behavioral trigger vocabulary and their multiplicative adjustments.
// Triggers match against normalized observation text and compose in the
// order declared here.
var (
	sportsTerms     = []string{"capitan", "deportivo", "atleta", "lesion deportiva", "equipo"}
	leadershipTerms = []string{"lider", "capitan"}

	sportsBoostIDs     = []int{16, 15}
	sportsPenaltyIDs   = []int{5, 9}
	impatientDampIDs   = []int{8, 9}
	impatientBoostIDs  = []int{11, 22}
	leadershipBoostIDs = []int{27, 28, 25}
)

// Assignment is the outcome of one area recommendation.
type Assignment struct {
	AreaID int
	Name   string
	Family string
	Score  float64
}

// Engine implements the multi-family assignment algorithm.
type Engine struct{}

// NewEngine creates an assignment engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Assign selects exactly one area for the feature row. The algorithm
// always yields a result: every family contributes a candidate and the
// base score is positive for any valid input. Missing observation text
// simply leaves every behavioral multiplier at 1.
func (e *Engine) Assign(row model.FeatureRow) Assignment {
	base := baseGradeWeight*row.GradeAverage +
		baseAttendanceWeight*row.Attendance*100 +
		baseEnvironmentWeight*row.Environment*100

	scores := make(map[int]float64, len(Catalog))
	for _, a := range Catalog {
		scores[a.ID] = base
	}

	// Thematic boosts from keyword affinities.
	boost(scores, scienceBoostIDs, 1+affinityBoostFactor*row.ScienceAffinity)
	boost(scores, quantBoostIDs, 1+affinityBoostFactor*row.QuantAffinity)
	boost(scores, socialBoostIDs, 1+affinityBoostFactor*row.SocialAffinity)

	// Behavioral adjustments from observation text.
	obs := textscore.Normalize(strings.Join(row.Observations, " "))
	if containsAny(obs, sportsTerms) {
		boost(scores, sportsBoostIDs, 1.5)
		boost(scores, sportsPenaltyIDs, 0.8)
	}
	if strings.Contains(obs, "impaciente") {
		boost(scores, impatientDampIDs, 0.6)
		boost(scores, impatientBoostIDs, 1.2)
	}
	if containsAny(obs, leadershipTerms) {
		boost(scores, leadershipBoostIDs, 1.2)
	}

	// One candidate per family, then the global maximum. Strict
	// greater-than keeps the first-encountered winner on ties.
	var best Assignment
	first := true
	for _, f := range Families {
		winnerID := f.AreaIDs[0]
		for _, id := range f.AreaIDs[1:] {
			if scores[id] > scores[winnerID] {
				winnerID = id
			}
		}
		if first || scores[winnerID] > best.Score {
			best = Assignment{
				AreaID: winnerID,
				Name:   Name(winnerID),
				Family: f.Name,
				Score:  scores[winnerID],
			}
			first = false
		}
	}
	return best
}

func boost(scores map[int]float64, ids []int, factor float64) {
	for _, id := range ids {
		scores[id] *= factor
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
