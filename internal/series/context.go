package series

import (
	"sort"

	"github.com/draftwise/draft-coach/internal/draft"
)

// A champion becomes a tendency once it shows up in this many games.
const prioritizedThreshold = 2

// GameSummary is one completed game in digest form.
type GameSummary struct {
	Game   int                     `json:"game"`
	Winner draft.Side              `json:"winner"`
	Picks  map[draft.Side][]string `json:"picks"`
	Bans   map[draft.Side][]string `json:"bans"`
}

// Tendencies are one side's habits across the completed games.
type Tendencies struct {
	// Prioritized champions kept showing up in the side's interest: picked
	// by it, or banned away from it by the opponent.
	Prioritized []string `json:"prioritized"`
	// FirstPicks is the side's first pick of each game, in game order.
	FirstPicks []string `json:"first_picks"`
	// BannedAgainst is every champion the opponent has banned so far.
	BannedAgainst []string `json:"banned_against"`
}

// SeriesContext is the derived view over the series so far. It is recomputed
// from the results on every call, never stored.
type SeriesContext struct {
	Game     int                       `json:"game"`
	Complete bool                      `json:"complete"`
	Wins     map[draft.Side]int        `json:"wins"`
	Blocked  map[string]Provenance     `json:"blocked"`
	Previous []GameSummary             `json:"previous"`
	Sides    map[draft.Side]Tendencies `json:"sides"`
}

func (s *Session) SeriesContext() SeriesContext {
	ctx := SeriesContext{
		Game:     s.Game,
		Complete: s.Done,
		Wins:     map[draft.Side]int{},
		Blocked:  map[string]Provenance{},
		Previous: []GameSummary{},
		Sides:    map[draft.Side]Tendencies{},
	}
	for side, n := range s.Wins {
		ctx.Wins[side] = n
	}
	for champion, p := range s.Blocked {
		ctx.Blocked[champion] = p
	}
	for _, r := range s.Results {
		ctx.Previous = append(ctx.Previous, summarize(r))
	}
	for _, side := range []draft.Side{draft.SideBlue, draft.SideRed} {
		ctx.Sides[side] = tendenciesFor(side, s.Results)
	}
	return ctx
}

func summarize(r GameResult) GameSummary {
	sum := GameSummary{
		Game:   r.Game,
		Winner: r.Winner,
		Picks:  map[draft.Side][]string{},
		Bans:   map[draft.Side][]string{},
	}
	for _, a := range r.Actions {
		switch a.Type {
		case draft.ActionPick:
			sum.Picks[a.Side] = append(sum.Picks[a.Side], a.Champion)
		case draft.ActionBan:
			sum.Bans[a.Side] = append(sum.Bans[a.Side], a.Champion)
		}
	}
	return sum
}

func tendenciesFor(side draft.Side, results []GameResult) Tendencies {
	interest := map[string]int{}
	bannedAgainst := map[string]bool{}
	firstPicks := []string{}

	for _, r := range results {
		counted := map[string]bool{}
		pickedFirst := false
		for _, a := range r.Actions {
			switch {
			case a.Type == draft.ActionPick && a.Side == side:
				if !pickedFirst {
					firstPicks = append(firstPicks, a.Champion)
					pickedFirst = true
				}
				if !counted[a.Champion] {
					interest[a.Champion]++
					counted[a.Champion] = true
				}
			case a.Type == draft.ActionBan && a.Side == side.Opponent():
				bannedAgainst[a.Champion] = true
				if !counted[a.Champion] {
					interest[a.Champion]++
					counted[a.Champion] = true
				}
			}
		}
	}

	prioritized := []string{}
	for champion, games := range interest {
		if games >= prioritizedThreshold {
			prioritized = append(prioritized, champion)
		}
	}
	sort.Slice(prioritized, func(i, j int) bool {
		if interest[prioritized[i]] != interest[prioritized[j]] {
			return interest[prioritized[i]] > interest[prioritized[j]]
		}
		return prioritized[i] < prioritized[j]
	})

	banned := make([]string, 0, len(bannedAgainst))
	for champion := range bannedAgainst {
		banned = append(banned, champion)
	}
	sort.Strings(banned)

	return Tendencies{
		Prioritized:   prioritized,
		FirstPicks:    firstPicks,
		BannedAgainst: banned,
	}
}
