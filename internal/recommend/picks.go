package recommend

import (
	"fmt"
	"sort"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/scoring"
)

const (
	// combinedCeiling lets synergy amplify a strong pick past 1.0 while the
	// individual components stay in [0,1].
	combinedCeiling = 1.5
	// surpriseFloor is the combined score above which a pick with zero player
	// history gets flagged instead of buried.
	surpriseFloor = 0.70
)

// PickRequest is one "what should this player pick here" question.
type PickRequest struct {
	Player     string
	Role       draft.Role
	OurPicks   []string
	EnemyPicks []string
	Banned     []string
	// FearlessBlocked is the series-wide blocked set; empty outside fearless.
	FearlessBlocked []string
	// PickCount is how many picks are locked across both teams, the key into
	// the role-phase table.
	PickCount int
	Limit     int
}

type PickSuggestion struct {
	Champion string     `json:"champion"`
	Role     draft.Role `json:"role"`
	// Combined = base x role-phase x synergy, clamped to [0, 1.5].
	Combined float64 `json:"combined"`
	Base     float64 `json:"base"`
	// RolePhase and Synergy are the applied multipliers.
	RolePhase float64 `json:"role_phase"`
	Synergy   float64 `json:"synergy"`
	Signals   Signals `json:"signals"`
	Tier      string  `json:"tier,omitempty"`
	// Flex marks a champion currently viable in more than one role.
	Flex bool `json:"flex"`
	// SurprisePick: scores high on everything except player history. Worth a
	// look, not a blind lock.
	SurprisePick bool `json:"surprise_pick"`
	// LowConfidence: nothing behind this number is better than a thin sample.
	LowConfidence bool `json:"low_confidence"`
}

// PickEngine ranks pick candidates for one player and role.
type PickEngine struct {
	scores  *scoring.Set
	weights Weights
}

// NewPickEngine wires the engine over a score set. Degenerate weights (zero
// or negative sum) fall back to the defaults rather than dividing by zero.
func NewPickEngine(scores *scoring.Set, weights Weights) *PickEngine {
	if weights.sum() <= 0 {
		weights = DefaultWeights()
	}
	return &PickEngine{scores: scores, weights: weights}
}

// RecommendPicks returns the ranked candidates: every known champion minus
// picks, bans and the fearless-blocked set, filtered to the requested role,
// best first. Ordering is combined score, then meta tier, then name.
func (e *PickEngine) RecommendPicks(req PickRequest) ([]PickSuggestion, error) {
	role, ok := draft.ParseRole(string(req.Role))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, req.Role)
	}
	req.Role = role // canonical spelling from here on
	if req.Limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadLimit, req.Limit)
	}
	if len(req.OurPicks) >= 5 {
		return nil, fmt.Errorf("%w: %d locked", ErrTeamFull, len(req.OurPicks))
	}

	taken := unavailableSet(req.OurPicks, req.EnemyPicks, req.Banned, req.FearlessBlocked)

	out := []PickSuggestion{}
	for _, champion := range e.scores.Champions() {
		if taken[champion] {
			continue
		}
		if !e.scores.Flex.ViableIn(champion, req.Role) {
			continue
		}
		out = append(out, e.scoreCandidate(champion, req))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Combined != out[j].Combined {
			return out[i].Combined > out[j].Combined
		}
		if out[i].Signals.Meta.Value != out[j].Signals.Meta.Value {
			return out[i].Signals.Meta.Value > out[j].Signals.Meta.Value
		}
		return out[i].Champion < out[j].Champion
	})
	if len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

func (e *PickEngine) scoreCandidate(champion string, req PickRequest) PickSuggestion {
	sig := Signals{
		Meta:        e.scores.Meta.Score(champion),
		Tournament:  e.scores.Tournament.Score(champion),
		Proficiency: e.scores.Proficiency.Score(req.Player, champion),
		Matchup:     e.scores.Matchup.VsTeam(champion, req.EnemyPicks),
	}

	base := e.baseScore(sig)
	rolePhase := e.scores.RolePhase.Multiplier(req.Role, req.PickCount)
	synergy := e.scores.Synergy.Multiplier(champion, req.OurPicks)

	combined := base * rolePhase * synergy
	if combined < 0 {
		combined = 0
	}
	if combined > combinedCeiling {
		combined = combinedCeiling
	}

	return PickSuggestion{
		Champion:      champion,
		Role:          req.Role,
		Combined:      combined,
		Base:          base,
		RolePhase:     rolePhase,
		Synergy:       synergy,
		Signals:       sig,
		Tier:          e.scores.Meta.TierLabel(champion),
		Flex:          e.scores.Flex.Resolve(champion).Flex,
		SurprisePick:  combined >= surpriseFloor && !sig.Proficiency.HasData(),
		LowConfidence: lowConfidence(sig),
	}
}

// baseScore blends the four signals. A player with no history on the champion
// contributes nothing instead of a fake neutral: the proficiency weight is
// renormalized across the informed signals.
func (e *PickEngine) baseScore(sig Signals) float64 {
	w := e.weights
	num := w.Meta*sig.Meta.Value + w.Tournament*sig.Tournament.Value + w.Matchup*sig.Matchup.Value
	den := w.Meta + w.Tournament + w.Matchup
	if sig.Proficiency.HasData() {
		num += w.Proficiency * sig.Proficiency.Value
		den += w.Proficiency
	}
	if den <= 0 {
		return scoring.Neutral
	}
	return num / den
}
