package simulate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/knowledge"
	"github.com/draftwise/draft-coach/internal/scoring"
)

func testStrategy() *EnemyStrategy {
	return &EnemyStrategy{
		TeamID:        "DRX",
		Side:          draft.SideRed,
		ReferenceID:   "ref",
		ReferenceSide: draft.SideRed,
		Script: []ScriptAction{
			{Type: draft.ActionBan, Champion: "Aatrox"},
			{Type: draft.ActionBan, Champion: "Kalista"},
			{Type: draft.ActionBan, Champion: "Kindred"},
			{Type: draft.ActionPick, Champion: "Azir"},
			{Type: draft.ActionPick, Champion: "Vi"},
			{Type: draft.ActionPick, Champion: "Jinx"},
			{Type: draft.ActionBan, Champion: "Renekton"},
			{Type: draft.ActionBan, Champion: "Braum"},
			{Type: draft.ActionPick, Champion: "Rell"},
			{Type: draft.ActionPick, Champion: "Gnar"},
		},
		PickWeights: map[string]float64{"Viktor": 1.5, "Maokai": 1.0, "Zeri": 0.5},
		BanWeights:  map[string]float64{"Rumble": 1.0, "Ashe": 0.5},
	}
}

func TestPredict_PeeksWithoutAdvancing(t *testing.T) {
	s := testStrategy()

	first, ok := s.Predict(draft.ActionBan, PredictionContext{}, nil)
	require.True(t, ok)
	require.Equal(t, "Aatrox", first.Champion)
	require.Equal(t, SourceScript, first.Source)

	again, ok := s.Predict(draft.ActionBan, PredictionContext{}, nil)
	require.True(t, ok)
	require.Equal(t, first, again, "peeking must not consume the script")
	require.Equal(t, 0, s.Cursor)
}

func TestPredict_SubstitutesBlockedScriptEntry(t *testing.T) {
	s := testStrategy()
	s.Cursor = 3 // next scripted action: pick Azir

	pred, ok := s.Predict(draft.ActionPick, PredictionContext{
		Unavailable: map[string]bool{"Azir": true},
	}, nil)
	require.True(t, ok)
	require.Equal(t, "Viktor", pred.Champion, "heaviest available pool champion stands in")
	require.Equal(t, SourceFallback, pred.Source)
	require.True(t, pred.Substituted)
	require.Equal(t, "Azir", pred.Scripted)

	// The substitute can be blocked too.
	pred, ok = s.Predict(draft.ActionPick, PredictionContext{
		Unavailable: map[string]bool{"Azir": true, "Viktor": true},
	}, nil)
	require.True(t, ok)
	require.Equal(t, "Maokai", pred.Champion)
}

func TestPredict_RoleConsistentSubstitution(t *testing.T) {
	b := knowledge.NewBase()
	b.Roles["Viktor"] = knowledge.RoleEntry{CurrentViable: []string{"MID"}}
	b.Roles["Maokai"] = knowledge.RoleEntry{CurrentViable: []string{"TOP"}}
	b.Roles["Azir"] = knowledge.RoleEntry{CurrentViable: []string{"MID"}}
	flex := scoring.NewSet(b).Flex

	s := testStrategy()
	s.Cursor = 4 // next scripted action: pick Vi

	// Their mid is locked already; Viktor outweighs Maokai but only Maokai
	// fits an open role.
	pred, ok := s.Predict(draft.ActionPick, PredictionContext{
		Unavailable: map[string]bool{"Vi": true, "Azir": true},
		EnemyPicks:  []string{"Azir"},
	}, flex)
	require.True(t, ok)
	require.Equal(t, "Maokai", pred.Champion)
}

func TestAdvance_MonotonicThroughExhaustion(t *testing.T) {
	s := testStrategy()

	last := s.Cursor
	for i := 0; i < 15; i++ {
		s.Advance()
		require.Greater(t, s.Cursor, last, "cursor must never rewind")
		last = s.Cursor
	}
	require.True(t, s.Exhausted())

	// Exhausted script: predictions keep coming from the pools.
	pred, ok := s.Predict(draft.ActionPick, PredictionContext{}, nil)
	require.True(t, ok)
	require.Equal(t, SourceFallback, pred.Source)
	require.Equal(t, "Viktor", pred.Champion)

	pred, ok = s.Predict(draft.ActionBan, PredictionContext{}, nil)
	require.True(t, ok)
	require.Equal(t, "Rumble", pred.Champion)
}

func TestPredict_NothingLeft(t *testing.T) {
	s := testStrategy()
	s.Cursor = len(s.Script)

	_, ok := s.Predict(draft.ActionBan, PredictionContext{
		Unavailable: map[string]bool{"Rumble": true, "Ashe": true},
	}, nil)
	require.False(t, ok, "drained pools cannot predict")
}

func TestForecast_CoversRemainingEnemySteps(t *testing.T) {
	s := testStrategy() // red side

	state := draft.NewState(nil)
	forecast := s.Forecast(state, PredictionContext{}, nil)

	require.NotEmpty(t, forecast)
	require.Equal(t, 0, s.Cursor, "forecast must not advance the live cursor")

	seen := map[string]bool{}
	lastSeq := 0
	for _, entry := range forecast {
		require.Greater(t, entry.Seq, lastSeq, "forecast out of order")
		lastSeq = entry.Seq

		step, ok := draft.StepAt(entry.Seq - 1)
		require.True(t, ok)
		require.Equal(t, draft.SideRed, step.Side, "forecast must only cover enemy steps")
		require.Equal(t, step.Type, entry.Type)

		require.False(t, seen[entry.Champion], "champion %s predicted twice", entry.Champion)
		seen[entry.Champion] = true
	}

	// Ten enemy actions in a fresh draft: full script, no substitutions.
	require.Len(t, forecast, 10)
	require.Equal(t, "Aatrox", forecast[0].Champion)
	require.Equal(t, 2, forecast[0].Seq)
}

func TestForecast_SkipsAlreadyObservedActions(t *testing.T) {
	s := testStrategy()
	s.Cursor = 1 // their first ban is on the board

	state := mustState(t,
		draft.Action{Type: draft.ActionBan, Side: draft.SideBlue, Champion: "Ksante"},
		draft.Action{Type: draft.ActionBan, Side: draft.SideRed, Champion: "Aatrox"},
	)

	forecast := s.Forecast(state, PredictionContext{
		Unavailable: map[string]bool{"Ksante": true, "Aatrox": true},
	}, nil)

	require.Len(t, forecast, 9)
	require.Equal(t, "Kalista", forecast[0].Champion)
	require.Equal(t, 4, forecast[0].Seq)
}

func mustState(t *testing.T, actions ...draft.Action) draft.State {
	t.Helper()
	s := draft.NewState(nil)
	for _, a := range actions {
		next, err := draft.Observe(s, a)
		require.NoError(t, err)
		s = next
	}
	return s
}
