package simulate

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/history"
)

// Reference scoring. Side match dominates, then freshness, then outcome;
// fearless blocks and reuse inside one series push a reference down.
const (
	sideMatchBonus     = 2.0
	winBonus           = 0.5
	blockedPickPenalty = 0.25
	reusedRefPenalty   = 0.75
)

// BuildContext is the series-level state that steers reference selection.
type BuildContext struct {
	// Blocked is the fearless-blocked champion set.
	Blocked map[string]bool
	// UsedRefs are reference game ids that anchored earlier games of this
	// series; reusing one makes the forecast predictable in the wrong way.
	UsedRefs map[string]bool
}

// Simulator builds enemy strategies from a team's recorded games.
type Simulator struct {
	source history.GameSource
	log    *zap.Logger
}

func NewSimulator(source history.GameSource, log *zap.Logger) *Simulator {
	return &Simulator{source: source, log: log}
}

// BuildStrategy selects the best-matching completed game of the team as the
// script and folds the rest into the fallback pools. A team without usable
// games yields an empty strategy that predicts nothing rather than an error.
func (s *Simulator) BuildStrategy(ctx context.Context, teamID string, side draft.Side, bctx BuildContext) (*EnemyStrategy, error) {
	games, err := s.source.TeamGames(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("loading games for %s: %w", teamID, err)
	}

	refs := scoreReferences(games, side, bctx)
	strategy := &EnemyStrategy{
		TeamID:      teamID,
		Side:        side,
		PickWeights: map[string]float64{},
		BanWeights:  map[string]float64{},
	}
	if len(refs) == 0 {
		s.log.Warn("no completed games on record, enemy forecast will be empty",
			zap.String("team", teamID))
		return strategy, nil
	}

	primary := refs[0].game
	strategy.ReferenceID = primary.ID
	strategy.ReferenceSide = primary.Side
	for _, a := range primary.TeamActions() {
		strategy.Script = append(strategy.Script, ScriptAction{Type: a.Type, Champion: a.Champion})
	}

	for i, ref := range refs[1:] {
		weight := 1.0 / float64(1+i)
		for _, a := range ref.game.TeamActions() {
			switch a.Type {
			case draft.ActionPick:
				strategy.PickWeights[a.Champion] += weight
			case draft.ActionBan:
				strategy.BanWeights[a.Champion] += weight
			}
		}
	}

	s.log.Info("enemy strategy built",
		zap.String("team", teamID),
		zap.String("reference", primary.ID),
		zap.Bool("side_match", primary.Side == side),
		zap.Int("fallbacks", len(refs)-1))
	return strategy, nil
}

type scoredRef struct {
	game  history.Game
	score float64
}

func scoreReferences(games []history.Game, side draft.Side, bctx BuildContext) []scoredRef {
	complete := make([]history.Game, 0, len(games))
	for _, g := range games {
		if g.Complete() {
			complete = append(complete, g)
		}
	}
	if len(complete) == 0 {
		return nil
	}

	// Oldest first so the index doubles as the recency rank.
	sort.SliceStable(complete, func(i, j int) bool {
		if !complete[i].PlayedAt.Equal(complete[j].PlayedAt) {
			return complete[i].PlayedAt.Before(complete[j].PlayedAt)
		}
		return complete[i].ID < complete[j].ID
	})

	out := make([]scoredRef, 0, len(complete))
	for i, g := range complete {
		score := 0.0
		if g.Side == side {
			score += sideMatchBonus
		}
		if len(complete) > 1 {
			score += float64(i) / float64(len(complete)-1)
		} else {
			score += 1
		}
		if g.Win {
			score += winBonus
		}
		for _, a := range g.TeamActions() {
			if a.Type == draft.ActionPick && bctx.Blocked[a.Champion] {
				score -= blockedPickPenalty
			}
		}
		if bctx.UsedRefs[g.ID] {
			score -= reusedRefPenalty
		}
		out = append(out, scoredRef{game: g, score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		if !out[i].game.PlayedAt.Equal(out[j].game.PlayedAt) {
			return out[i].game.PlayedAt.After(out[j].game.PlayedAt)
		}
		return out[i].game.ID < out[j].game.ID
	})
	return out
}
