// Package history supplies completed historical games to the enemy
// simulator. Two sources implement the same interface: a gorm/Postgres
// repository fed by cmd/ingest, and a read-only JSON snapshot for runs
// without a database.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/draftwise/draft-coach/internal/draft"
)

var ErrNoSource = errors.New("no history source configured")

// Game is one completed historical match from a team's point of view: the
// full 20-action sequence plus which side the team occupied.
type Game struct {
	ID       string         `json:"id"`
	TeamID   string         `json:"team_id"`
	Side     draft.Side     `json:"side"`
	Win      bool           `json:"win"`
	PlayedAt time.Time      `json:"played_at"`
	Actions  []draft.Action `json:"actions"`
}

// Complete reports whether the game carries the full draft sequence.
// Incomplete games are useless as simulator references.
func (g Game) Complete() bool {
	return len(g.Actions) == len(draft.Order)
}

// TeamActions returns the team's own ten actions in draft order.
func (g Game) TeamActions() []draft.Action {
	out := make([]draft.Action, 0, len(draft.Order)/2)
	for _, a := range g.Actions {
		if a.Side == g.Side {
			out = append(out, a)
		}
	}
	return out
}

// GameSource answers which completed games a team has on record. Order is
// unspecified; callers sort by whatever they care about.
type GameSource interface {
	TeamGames(ctx context.Context, teamID string) ([]Game, error)
}

// None is the null source for runs with neither a database nor a snapshot:
// every lookup answers empty, so simulator strategies degrade to no script.
type None struct{}

func (None) TeamGames(context.Context, string) ([]Game, error) { return nil, nil }
