// Package scoring holds the leaf scorers. Every scorer is a pure read over
// the knowledge base: score in [0,1] plus a confidence tier. A missing key is
// never an error; it resolves to the neutral 0.5 with NoData, so the layers
// above combine scores without any nil handling.
package scoring

import (
	"math"

	"github.com/draftwise/draft-coach/internal/knowledge"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNoData Confidence = "no_data"
)

// Neutral is the documented stand-in for "we know nothing".
const Neutral = 0.5

type Score struct {
	Value      float64    `json:"value"`
	Confidence Confidence `json:"confidence"`
}

func NeutralScore() Score {
	return Score{Value: Neutral, Confidence: ConfidenceNoData}
}

// HasData reports whether the score is backed by at least one observation.
func (s Score) HasData() bool { return s.Confidence != ConfidenceNoData }

// Set bundles one scorer per signal over a shared knowledge base.
type Set struct {
	Meta        *MetaScorer
	Tournament  *TournamentScorer
	Proficiency *ProficiencyScorer
	Matchup     *MatchupCalculator
	Synergy     *SynergyService
	Archetype   *ArchetypeService
	RolePhase   *RolePhaseScorer
	Transfer    *SkillTransferService
	Flex        *FlexResolver

	base *knowledge.Base
}

func NewSet(base *knowledge.Base) *Set {
	return &Set{
		Meta:        NewMetaScorer(base),
		Tournament:  NewTournamentScorer(base),
		Proficiency: NewProficiencyScorer(base),
		Matchup:     NewMatchupCalculator(base),
		Synergy:     NewSynergyService(base),
		Archetype:   NewArchetypeService(base),
		RolePhase:   NewRolePhaseScorer(base),
		Transfer:    NewSkillTransferService(base),
		Flex:        NewFlexResolver(base),
		base:        base,
	}
}

// Champions exposes the champion universe for candidate pools.
func (s *Set) Champions() []string { return s.base.Champions() }

// shrunkWinRate pulls small samples toward neutral: 3-0 on a champion is a
// good sign, not a 100% win rate.
func shrunkWinRate(wins, games int) float64 {
	if games <= 0 {
		return Neutral
	}
	rate := float64(wins) / float64(games)
	volume := math.Min(1, float64(games)/20.0)
	return Neutral + (rate-Neutral)*volume
}

func sampleConfidence(games, high, medium int) Confidence {
	switch {
	case games >= high:
		return ConfidenceHigh
	case games >= medium:
		return ConfidenceMedium
	case games >= 1:
		return ConfidenceLow
	default:
		return ConfidenceNoData
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func worse(a, b Confidence) Confidence {
	rank := map[Confidence]int{
		ConfidenceHigh:   3,
		ConfidenceMedium: 2,
		ConfidenceLow:    1,
		ConfidenceNoData: 0,
	}
	if rank[a] <= rank[b] {
		return a
	}
	return b
}
