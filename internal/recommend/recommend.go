// Package recommend turns the leaf scores into ranked pick and ban
// suggestions. Both engines are pure functions over the knowledge base and
// the caller's draft context: same inputs, same list, no side effects.
// Invalid requests are rejected up front with a sentinel error; a thin or
// empty knowledge base degrades the rankings, never the calls.
package recommend

import (
	"errors"

	"github.com/draftwise/draft-coach/internal/scoring"
)

var ErrUnknownRole = errors.New("unknown role")
var ErrBadLimit = errors.New("limit must be positive")
var ErrTeamFull = errors.New("team already has five picks")
var ErrBadPhase = errors.New("not a ban phase")

// Weights blend the four base signals of a pick suggestion. The defaults are
// the tuned values; a weights YAML file can override them at startup.
type Weights struct {
	Meta        float64 `yaml:"meta"`
	Tournament  float64 `yaml:"tournament"`
	Proficiency float64 `yaml:"proficiency"`
	Matchup     float64 `yaml:"matchup"`
}

func DefaultWeights() Weights {
	return Weights{
		Meta:        0.25,
		Tournament:  0.15,
		Proficiency: 0.35,
		Matchup:     0.25,
	}
}

func (w Weights) sum() float64 {
	return w.Meta + w.Tournament + w.Proficiency + w.Matchup
}

// Signals is the per-candidate score breakdown both engines attach to their
// suggestions so a coach can see where a ranking comes from.
type Signals struct {
	Meta        scoring.Score `json:"meta"`
	Tournament  scoring.Score `json:"tournament"`
	Proficiency scoring.Score `json:"proficiency"`
	Matchup     scoring.Score `json:"matchup"`
}

func lowConfidence(sig Signals) bool {
	for _, s := range [...]scoring.Score{sig.Meta, sig.Tournament, sig.Proficiency, sig.Matchup} {
		switch s.Confidence {
		case scoring.ConfidenceHigh, scoring.ConfidenceMedium:
			return false
		}
	}
	return true
}

// unavailableSet folds the hard filters into one lookup: picked either side,
// banned, or fearless-blocked all exclude a champion identically.
func unavailableSet(groups ...[]string) map[string]bool {
	taken := map[string]bool{}
	for _, group := range groups {
		for _, champion := range group {
			taken[champion] = true
		}
	}
	return taken
}
