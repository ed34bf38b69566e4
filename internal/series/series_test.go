package series

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/history"
	"github.com/draftwise/draft-coach/internal/knowledge"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/scoring"
	"github.com/draftwise/draft-coach/internal/simulate"
)

type stubGames []history.Game

func (s stubGames) TeamGames(context.Context, string) ([]history.Game, error) {
	return s, nil
}

var testDay = time.Date(2025, 4, 12, 17, 0, 0, 0, time.UTC)

func histGame(id string, side draft.Side, win bool, day int, team, opp []string) history.Game {
	actions := make([]draft.Action, 0, len(draft.Order))
	ti, oi := 0, 0
	for i, step := range draft.Order {
		champion := ""
		if step.Side == side {
			champion = team[ti]
			ti++
		} else {
			champion = opp[oi]
			oi++
		}
		actions = append(actions, draft.Action{
			Seq:      i + 1,
			Type:     step.Type,
			Side:     step.Side,
			Champion: champion,
		})
	}
	return history.Game{
		ID:       id,
		TeamID:   "DRX",
		Side:     side,
		Win:      win,
		PlayedAt: testDay.AddDate(0, 0, day),
		Actions:  actions,
	}
}

// DRX's two recorded games, both on red side. h2 is newer and anchors the
// first strategy.
func drxGames() []history.Game {
	filler := []string{"Olaf", "Annie", "Galio", "Twitch", "Blitzcrank", "Amumu", "Sona", "Ryze", "Singed", "Teemo"}
	h1 := histGame("h1", draft.SideRed, true, 0,
		[]string{"Ksante", "Nidalee", "Taliyah", "Ahri", "Zac", "Varus", "Camille", "Ornn", "Nami", "Sylas"},
		filler)
	h2 := histGame("h2", draft.SideRed, false, 3,
		[]string{"Malphite", "Elise", "Neeko", "Syndra", "Maokai", "Jinx", "Gwen", "Jarvan IV", "Renata", "Draven"},
		filler)
	return []history.Game{h1, h2}
}

func testDeps(games []history.Game) Deps {
	b := knowledge.NewBase()
	for _, c := range []string{"Azir", "Ahri", "Viktor", "Syndra", "Orianna", "Zed"} {
		b.Roles[c] = knowledge.RoleEntry{CurrentViable: []string{"MID"}}
	}
	b.Meta["Azir"] = knowledge.MetaEntry{Tier: "S"}
	b.Meta["Viktor"] = knowledge.MetaEntry{Tier: "A"}

	return Deps{
		Scores:    scoring.NewSet(b),
		Simulator: simulate.NewSimulator(stubGames(games), zap.NewNop()),
		Weights:   recommend.DefaultWeights(),
		Log:       zap.NewNop(),
	}
}

func newTestSession(t *testing.T, cfg Config, games []history.Game) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), cfg, testDeps(games))
	require.NoError(t, err)
	return s
}

func bo3Blue(fearless bool) Config {
	return Config{
		SeriesLength: 3,
		Fearless:     fearless,
		OurSide:      draft.SideBlue,
		EnemyTeamID:  "DRX",
		OurPlayers: []Player{
			{Name: "Zeus", Role: draft.RoleTop},
			{Name: "Oner", Role: draft.RoleJungle},
			{Name: "Faker", Role: draft.RoleMid},
			{Name: "Gumayusi", Role: draft.RoleBot},
			{Name: "Keria", Role: draft.RoleSupport},
		},
		EnemyPlayers: []Player{
			{Name: "Kingen", Role: draft.RoleTop},
			{Name: "Pyosik", Role: draft.RoleJungle},
			{Name: "Zeka", Role: draft.RoleMid},
			{Name: "Deft", Role: draft.RoleBot},
			{Name: "BeryL", Role: draft.RoleSupport},
		},
	}
}

// playGame drives a full 20-action draft. blue and red are each consumed in
// that side's turn order: three bans, three picks, two bans, two picks.
func playGame(t *testing.T, s *Session, blue, red []string) {
	t.Helper()
	bi, ri := 0, 0
	for !s.Draft.Complete() {
		step, ok := s.Draft.NextStep()
		require.True(t, ok)
		champion := ""
		if step.Side == draft.SideBlue {
			champion = blue[bi]
			bi++
		} else {
			champion = red[ri]
			ri++
		}
		_, err := s.ObserveAction(draft.Action{Type: step.Type, Side: step.Side, Champion: champion})
		require.NoError(t, err)
	}
}

var (
	game1Blue = []string{"Rumble", "Ashe", "Sejuani", "Azir", "Vi", "Jinx", "Poppy", "Leona", "Rell", "Gnar"}
	game1Red  = []string{"Ksante", "Nidalee", "Taliyah", "Ahri", "Zac", "Varus", "Camille", "Ornn", "Nami", "Sylas"}
)

func TestNewSession_ConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"even length", func(c *Config) { c.SeriesLength = 4 }},
		{"zero length", func(c *Config) { c.SeriesLength = 0 }},
		{"too long", func(c *Config) { c.SeriesLength = 9 }},
		{"bad side", func(c *Config) { c.OurSide = "purple" }},
		{"oversized roster", func(c *Config) {
			c.OurPlayers = append(c.OurPlayers, Player{Name: "Sixth", Role: draft.RoleMid})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := bo3Blue(false)
			tc.mut(&cfg)
			_, err := NewSession(context.Background(), cfg, testDeps(nil))
			require.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func TestNewSession_BuildsStrategyForEnemySide(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	require.Equal(t, draft.SideRed, s.EnemySide())
	require.Equal(t, draft.SideRed, s.Strategy.Side)
	require.Equal(t, "h2", s.Strategy.ReferenceID, "newer game anchors the script")
	require.Len(t, s.Strategy.Script, 10)
}

func TestObserveAction_AdvancesCursorOnEnemyActionsOnly(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	forecast, err := s.ObserveAction(draft.Action{Type: draft.ActionBan, Side: draft.SideBlue, Champion: "Rumble"})
	require.NoError(t, err)
	require.Equal(t, 0, s.Strategy.Cursor, "our actions do not move the enemy cursor")
	require.Len(t, forecast, 10)

	forecast, err = s.ObserveAction(draft.Action{Type: draft.ActionBan, Side: draft.SideRed, Champion: "Ksante"})
	require.NoError(t, err)
	require.Equal(t, 1, s.Strategy.Cursor)
	require.Len(t, forecast, 9)
}

func TestObserveAction_RejectsIllegalActions(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	_, err := s.ObserveAction(draft.Action{Type: draft.ActionBan, Side: draft.SideRed, Champion: "Ksante"})
	require.ErrorIs(t, err, draft.ErrWrongTurn)

	_, err = s.ObserveAction(draft.Action{Type: draft.ActionPick, Side: draft.SideBlue, Champion: "Azir"})
	require.ErrorIs(t, err, draft.ErrWrongTurn)
}

func TestRecordGameResult_SeriesCompletesAtMajority(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	require.NoError(t, s.RecordGameResult(context.Background(), 1, draft.SideBlue))
	require.False(t, s.Done)
	require.Equal(t, 2, s.Game)

	require.NoError(t, s.RecordGameResult(context.Background(), 2, draft.SideRed))
	require.False(t, s.Done, "1-1 is not a finished best-of-three")
	require.Equal(t, 3, s.Game)

	require.NoError(t, s.RecordGameResult(context.Background(), 3, draft.SideBlue))
	require.True(t, s.Done, "two wins close a best-of-three")
	require.Equal(t, 2, s.Wins[draft.SideBlue])

	err := s.RecordGameResult(context.Background(), 4, draft.SideBlue)
	require.ErrorIs(t, err, ErrSeriesComplete)
	_, err = s.ObserveAction(draft.Action{Type: draft.ActionBan, Side: draft.SideBlue, Champion: "Rumble"})
	require.ErrorIs(t, err, ErrSeriesComplete)
}

func TestRecordGameResult_Validation(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	require.ErrorIs(t, s.RecordGameResult(context.Background(), 2, draft.SideBlue), ErrBadGameNumber)
	require.ErrorIs(t, s.RecordGameResult(context.Background(), 1, "purple"), ErrBadWinner)
}

func TestFearless_BlocksPlayedChampionsForTheSeries(t *testing.T) {
	s := newTestSession(t, bo3Blue(true), drxGames())

	playGame(t, s, game1Blue, game1Red)
	require.NoError(t, s.RecordGameResult(context.Background(), 1, draft.SideBlue))
	require.Equal(t, 2, s.Game)
	require.Empty(t, s.Draft.Actions, "next game starts on a fresh draft")

	// Exactly the ten picked champions are blocked, with provenance.
	require.Len(t, s.Blocked, 10)
	require.Equal(t, Provenance{Side: draft.SideBlue, Game: 1}, s.Blocked["Azir"])
	require.Equal(t, Provenance{Side: draft.SideRed, Game: 1}, s.Blocked["Ahri"])
	require.NotContains(t, s.Blocked, "Rumble", "bans do not block")

	// A blocked champion cannot be banned or picked in game 2.
	_, err := s.ObserveAction(draft.Action{Type: draft.ActionBan, Side: draft.SideBlue, Champion: "Azir"})
	require.ErrorIs(t, err, draft.ErrIllegalBan)

	// Recommendations subtract the blocked set like any other filter.
	picks, err := s.RecommendPicks("Faker", draft.RoleMid, 10)
	require.NoError(t, err)
	require.NotEmpty(t, picks)
	for _, p := range picks {
		require.NotContains(t, s.Blocked, p.Champion)
	}

	// The forecast substitutes or skips blocked champions, never emits one.
	for _, entry := range s.Forecast() {
		require.NotContains(t, s.Blocked, entry.Champion,
			"forecast leaked a fearless-blocked champion")
	}
}

func TestFearless_ForecastDegradesWhenPoolsDrain(t *testing.T) {
	s := newTestSession(t, bo3Blue(true), drxGames())

	playGame(t, s, game1Blue, game1Red)
	require.NoError(t, s.RecordGameResult(context.Background(), 1, draft.SideRed))

	// Game 2 keeps h2 as reference (h1's whole pick set is blocked). Its
	// scripted Jinx pick is blocked and every fallback pick is too, so that
	// slot is skipped rather than invented.
	require.Equal(t, "h2", s.Strategy.ReferenceID)
	forecast := s.Forecast()
	require.Len(t, forecast, 9)

	champions := map[string]bool{}
	for _, entry := range forecast {
		champions[entry.Champion] = true
	}
	require.True(t, champions["Syndra"])
	require.False(t, champions["Jinx"])
}

func TestStrategyRebuild_AvoidsReusedReference(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())
	require.Equal(t, "h2", s.Strategy.ReferenceID)

	require.NoError(t, s.RecordGameResult(context.Background(), 1, draft.SideBlue))
	require.Equal(t, "h1", s.Strategy.ReferenceID,
		"game 2 should anchor on a reference not used yet")
}

func TestRecommendPicks_FillsPlayerFromRoster(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	named, err := s.RecommendPicks("", draft.RoleMid, 5)
	require.NoError(t, err)
	explicit, err := s.RecommendPicks("Faker", draft.RoleMid, 5)
	require.NoError(t, err)
	require.Equal(t, explicit, named, "empty player resolves to the role holder")
}

func TestRecommendBans_UsesLiveDraftPhase(t *testing.T) {
	s := newTestSession(t, bo3Blue(false), drxGames())

	bans, err := s.RecommendBans(5)
	require.NoError(t, err)
	require.NotEmpty(t, bans)

	// Drive into pick phase 1 and the session refuses ban advice.
	playActions(t, s, 6, []string{"Rumble", "Ashe", "Sejuani"}, []string{"Ksante", "Nidalee", "Taliyah"})
	_, err = s.RecommendBans(5)
	require.ErrorIs(t, err, recommend.ErrBadPhase)
}

// playActions drives the first n actions of the draft.
func playActions(t *testing.T, s *Session, n int, blue, red []string) {
	t.Helper()
	bi, ri := 0, 0
	for i := 0; i < n; i++ {
		step, ok := s.Draft.NextStep()
		require.True(t, ok)
		champion := ""
		if step.Side == draft.SideBlue {
			champion = blue[bi]
			bi++
		} else {
			champion = red[ri]
			ri++
		}
		_, err := s.ObserveAction(draft.Action{Type: step.Type, Side: step.Side, Champion: champion})
		require.NoError(t, err)
	}
}
