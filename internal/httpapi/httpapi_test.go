package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/history"
	"github.com/draftwise/draft-coach/internal/knowledge"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/registry"
	"github.com/draftwise/draft-coach/internal/scoring"
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/simulate"
	"github.com/draftwise/draft-coach/internal/types"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	b := knowledge.NewBase()
	for _, c := range []string{"Azir", "Ahri", "Viktor", "Syndra", "Orianna"} {
		b.Roles[c] = knowledge.RoleEntry{CurrentViable: []string{"MID"}}
	}
	b.Meta["Azir"] = knowledge.MetaEntry{Tier: "S"}
	b.Meta["Viktor"] = knowledge.MetaEntry{Tier: "A"}

	deps := series.Deps{
		Scores:    scoring.NewSet(b),
		Simulator: simulate.NewSimulator(history.None{}, zap.NewNop()),
		Weights:   recommend.DefaultWeights(),
		Log:       zap.NewNop(),
	}
	reg := registry.New(ctx, deps, registry.Options{}, zap.NewNop())
	return SetupRoutes(reg)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createSeries(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/series", types.CreateSeriesRequest{
		SeriesLength: 3,
		Fearless:     true,
		OurSide:      "blue",
		EnemyTeamID:  "DRX",
		OurPlayers:   []types.Player{{Name: "Faker", Role: "mid"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[types.CreateSeriesResponse](t, rec)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestCreateAndGetSeries(t *testing.T) {
	h := testRouter(t)

	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodGet, "/series/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sctx := decode[series.SeriesContext](t, rec)
	require.Equal(t, 1, sctx.Game)
	require.False(t, sctx.Complete)
}

func TestCreateSeries_RejectsBadInput(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/series", types.CreateSeriesRequest{
		SeriesLength: 3, OurSide: "purple", EnemyTeamID: "DRX",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/series", types.CreateSeriesRequest{
		SeriesLength: 4, OurSide: "blue", EnemyTeamID: "DRX",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestObserveAction_LegalityMapsToStatus(t *testing.T) {
	h := testRouter(t)
	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodPost, "/series/"+id+"/actions", types.ActionRequest{
		Type: "ban", Side: "blue", Champion: "Rumble",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Blue just banned; it is red's turn.
	rec = doJSON(t, h, http.MethodPost, "/series/"+id+"/actions", types.ActionRequest{
		Type: "ban", Side: "blue", Champion: "Ashe",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/series/"+id+"/actions", types.ActionRequest{
		Type: "ban", Side: "mauve", Champion: "Ashe",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordResult_AdvancesAndValidates(t *testing.T) {
	h := testRouter(t)
	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodPost, "/series/"+id+"/result", types.ResultRequest{Game: 1, Winner: "blue"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sctx := decode[series.SeriesContext](t, rec)
	require.Equal(t, 2, sctx.Game)

	rec = doJSON(t, h, http.MethodPost, "/series/"+id+"/result", types.ResultRequest{Game: 5, Winner: "blue"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/series/"+id+"/result", types.ResultRequest{Game: 2, Winner: "nobody"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendPicks_Endpoint(t *testing.T) {
	h := testRouter(t)
	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodPost, "/series/"+id+"/recommend/picks", types.PicksRequest{Role: "mid", Limit: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	picks := decode[[]recommend.PickSuggestion](t, rec)
	require.NotEmpty(t, picks)
	require.LessOrEqual(t, len(picks), 3)
	require.Equal(t, "Azir", picks[0].Champion, "S tier should lead an empty draft")

	rec = doJSON(t, h, http.MethodPost, "/series/"+id+"/recommend/picks", types.PicksRequest{Role: "goalkeeper"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendBans_EmptyBodyUsesDefaults(t *testing.T) {
	h := testRouter(t)
	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodPost, "/series/"+id+"/recommend/bans", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bans := decode[[]recommend.BanSuggestion](t, rec)
	require.NotEmpty(t, bans)
	require.LessOrEqual(t, len(bans), defaultLimit)
}

func TestDeleteSeries(t *testing.T) {
	h := testRouter(t)
	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodDelete, "/series/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/series/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownSeriesIs404(t *testing.T) {
	h := testRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/series/ghost/actions", types.ActionRequest{
		Type: "ban", Side: "blue", Champion: "Rumble",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/series/ghost/forecast", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForecastEndpoint_EmptyWithoutHistory(t *testing.T) {
	h := testRouter(t)
	id := createSeries(t, h)

	rec := doJSON(t, h, http.MethodGet, "/series/"+id+"/forecast", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	forecast := decode[[]simulate.ForecastEntry](t, rec)
	require.Empty(t, forecast, "no reference games means no forecast")
}
