// Package simulate forecasts an opponent's draft. A strategy is anchored on
// one reference game of theirs (the script) with weighted champion pools
// aggregated from their other games as the fallback. It models what THEY
// historically do, not what we would do in their seat.
package simulate

import (
	"sort"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/scoring"
)

type Source string

const (
	SourceScript   Source = "script"
	SourceFallback Source = "fallback"
)

// ScriptAction is one of the enemy's ten actions in the reference game.
type ScriptAction struct {
	Type     draft.ActionType `json:"type"`
	Champion string           `json:"champion"`
}

// EnemyStrategy is the per-game forecast state. The cursor is the only
// mutable part: it advances exactly once per observed enemy action, never
// rewinds, and predictions peek without moving it.
type EnemyStrategy struct {
	TeamID string     `json:"team_id"`
	Side   draft.Side `json:"side"`

	// ReferenceID anchors the script; ReferenceSide records which side the
	// team held there, so a blue-side reference read onto a red-side game is
	// an explicit mapping rather than an accident.
	ReferenceID   string     `json:"reference_id,omitempty"`
	ReferenceSide draft.Side `json:"reference_side,omitempty"`

	Script []ScriptAction `json:"script"`

	// PickWeights and BanWeights aggregate the fallback references,
	// champion to weight. Consulted when the script is blocked or spent.
	PickWeights map[string]float64 `json:"pick_weights"`
	BanWeights  map[string]float64 `json:"ban_weights"`

	Cursor int `json:"cursor"`
}

// Prediction is one forecast enemy action.
type Prediction struct {
	Champion string           `json:"champion"`
	Type     draft.ActionType `json:"type"`
	Source   Source           `json:"source"`
	// Substituted marks a scripted champion that was unavailable; Scripted
	// keeps the original name for display.
	Substituted bool   `json:"substituted,omitempty"`
	Scripted    string `json:"scripted,omitempty"`
}

// PredictionContext is the availability view the session layer supplies:
// everything picked, banned or fearless-blocked, plus the enemy's locked
// picks for role-consistency.
type PredictionContext struct {
	Unavailable map[string]bool
	EnemyPicks  []string
}

// Exhausted reports whether the script is spent; after that every prediction
// comes from the weighted pools.
func (s *EnemyStrategy) Exhausted() bool {
	return s.Cursor >= len(s.Script)
}

// Advance moves the cursor past one observed enemy action.
func (s *EnemyStrategy) Advance() {
	s.Cursor++
}

// Predict peeks the enemy's next action of the given type without advancing
// the cursor. ok is false when neither the script nor the pools can offer an
// available champion.
func (s *EnemyStrategy) Predict(typ draft.ActionType, ctx PredictionContext, flex *scoring.FlexResolver) (Prediction, bool) {
	if !s.Exhausted() {
		entry := s.Script[s.Cursor]
		if entry.Type == typ {
			if !ctx.Unavailable[entry.Champion] {
				return Prediction{Champion: entry.Champion, Type: typ, Source: SourceScript}, true
			}
			if sub, ok := s.fromPool(typ, ctx, flex); ok {
				return Prediction{
					Champion:    sub,
					Type:        typ,
					Source:      SourceFallback,
					Substituted: true,
					Scripted:    entry.Champion,
				}, true
			}
			return Prediction{}, false
		}
		// Script misaligned with the live order; trust the pools.
	}
	if champion, ok := s.fromPool(typ, ctx, flex); ok {
		return Prediction{Champion: champion, Type: typ, Source: SourceFallback}, true
	}
	return Prediction{}, false
}

// ForecastEntry is a Prediction pinned to a sequence slot of the live draft.
type ForecastEntry struct {
	Seq int `json:"seq"`
	Prediction
}

// Forecast plays the rest of the draft forward on scratch copies: every
// remaining enemy step gets a prediction, each predicted champion blocks the
// later ones. The live strategy is not touched.
func (s *EnemyStrategy) Forecast(state draft.State, ctx PredictionContext, flex *scoring.FlexResolver) []ForecastEntry {
	scratch := *s
	unavailable := map[string]bool{}
	for champion := range ctx.Unavailable {
		unavailable[champion] = true
	}
	enemyPicks := append([]string(nil), ctx.EnemyPicks...)

	out := []ForecastEntry{}
	for count := len(state.Actions); count < len(draft.Order); count++ {
		step, _ := draft.StepAt(count)
		if step.Side != s.Side {
			continue
		}
		pred, ok := scratch.Predict(step.Type, PredictionContext{
			Unavailable: unavailable,
			EnemyPicks:  enemyPicks,
		}, flex)
		scratch.Cursor++
		if !ok {
			continue
		}
		out = append(out, ForecastEntry{Seq: count + 1, Prediction: pred})
		unavailable[pred.Champion] = true
		if pred.Type == draft.ActionPick {
			enemyPicks = append(enemyPicks, pred.Champion)
		}
	}
	return out
}

// fromPool picks the heaviest available champion of the required type. Pick
// substitutions prefer champions that slot into a role the enemy has not
// filled yet; when nothing qualifies the weight order alone decides.
func (s *EnemyStrategy) fromPool(typ draft.ActionType, ctx PredictionContext, flex *scoring.FlexResolver) (string, bool) {
	pool := s.PickWeights
	if typ == draft.ActionBan {
		pool = s.BanWeights
	}
	ranked := rankPool(pool)

	if typ == draft.ActionPick && flex != nil {
		unfilled := unfilledRoles(ctx.EnemyPicks, flex)
		for _, champion := range ranked {
			if ctx.Unavailable[champion] {
				continue
			}
			for _, role := range unfilled {
				if flex.ViableIn(champion, role) {
					return champion, true
				}
			}
		}
	}

	for _, champion := range ranked {
		if !ctx.Unavailable[champion] {
			return champion, true
		}
	}
	return "", false
}

func rankPool(pool map[string]float64) []string {
	out := make([]string, 0, len(pool))
	for champion := range pool {
		out = append(out, champion)
	}
	sort.Slice(out, func(i, j int) bool {
		if pool[out[i]] != pool[out[j]] {
			return pool[out[i]] > pool[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// unfilledRoles subtracts the primary roles of the enemy's locked picks from
// the full role set. Picks without current role data fill nothing.
func unfilledRoles(enemyPicks []string, flex *scoring.FlexResolver) []draft.Role {
	filled := map[draft.Role]bool{}
	for _, pick := range enemyPicks {
		if res := flex.Resolve(pick); res.HasCurrentData {
			filled[res.Primary] = true
		}
	}
	var out []draft.Role
	for _, role := range draft.RoleOrder {
		if !filled[role] {
			out = append(out, role)
		}
	}
	return out
}
