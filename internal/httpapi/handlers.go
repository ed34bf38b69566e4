package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/registry"
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/session"
	"github.com/draftwise/draft-coach/internal/types"
)

const defaultLimit = 5

func CreateSeries(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateSeriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}

		cfg, err := toSeriesConfig(req)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}

		actor, err := reg.CreateSession(r.Context(), cfg)
		if err != nil {
			writeDomainErr(w, err)
			return
		}

		sctx, err := actor.Context(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, types.CreateSeriesResponse{ID: actor.ID(), Context: sctx})
	}
}

func GetSeries(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}
		sctx, err := actor.Context(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sctx)
	}
}

func DeleteSeries(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}
		if err := reg.RemoveSession(r.Context(), actor.ID()); err != nil {
			writeDomainErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ObserveAction(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		var req types.ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		action, err := toAction(req)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}

		forecast, err := actor.Observe(r.Context(), action)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, forecast)
	}
}

func RecordResult(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		var req types.ResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		winner, ok := draft.ParseSide(req.Winner)
		if !ok {
			writeErr(w, http.StatusBadRequest, fmt.Sprintf("unknown side %q", req.Winner))
			return
		}

		if err := actor.RecordResult(r.Context(), req.Game, winner); err != nil {
			writeDomainErr(w, err)
			return
		}
		sctx, err := actor.Context(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sctx)
	}
}

func GetForecast(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}
		forecast, err := actor.Forecast(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, forecast)
	}
}

func RecommendPicks(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		var req types.PicksRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Limit == 0 {
			req.Limit = defaultLimit
		}

		picks, err := actor.RecommendPicks(r.Context(), req.Player, draft.Role(req.Role), req.Limit)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, picks)
	}
}

func RecommendBans(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		req := types.BansRequest{Limit: defaultLimit}
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeErr(w, http.StatusBadRequest, "bad json")
				return
			}
			if req.Limit == 0 {
				req.Limit = defaultLimit
			}
		}

		bans, err := actor.RecommendBans(r.Context(), req.Limit)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bans)
	}
}

func GetEvaluation(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := lookup(w, r, reg)
		if !ok {
			return
		}
		eval, err := actor.Evaluation(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eval)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func lookup(w http.ResponseWriter, r *http.Request, reg *registry.Registry) (*session.Actor, bool) {
	id := chi.URLParam(r, "id")
	actor, err := reg.GetSession(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return nil, false
	}
	return actor, true
}

func toSeriesConfig(req types.CreateSeriesRequest) (series.Config, error) {
	side, ok := draft.ParseSide(req.OurSide)
	if !ok {
		return series.Config{}, fmt.Errorf("unknown side %q", req.OurSide)
	}
	cfg := series.Config{
		SeriesLength: req.SeriesLength,
		Fearless:     req.Fearless,
		OurSide:      side,
		EnemyTeamID:  req.EnemyTeamID,
	}
	var err error
	if cfg.OurPlayers, err = toPlayers(req.OurPlayers); err != nil {
		return series.Config{}, err
	}
	if cfg.EnemyPlayers, err = toPlayers(req.EnemyPlayers); err != nil {
		return series.Config{}, err
	}
	return cfg, nil
}

func toPlayers(in []types.Player) ([]series.Player, error) {
	out := make([]series.Player, 0, len(in))
	for _, p := range in {
		role, ok := draft.ParseRole(p.Role)
		if !ok {
			return nil, fmt.Errorf("unknown role %q for player %q", p.Role, p.Name)
		}
		out = append(out, series.Player{Name: p.Name, Role: role})
	}
	return out, nil
}

func toAction(req types.ActionRequest) (draft.Action, error) {
	typ, ok := draft.ParseActionType(req.Type)
	if !ok {
		return draft.Action{}, fmt.Errorf("unknown action type %q", req.Type)
	}
	side, ok := draft.ParseSide(req.Side)
	if !ok {
		return draft.Action{}, fmt.Errorf("unknown side %q", req.Side)
	}
	if req.Champion == "" {
		return draft.Action{}, errors.New("champion required")
	}
	return draft.Action{Seq: req.Seq, Type: typ, Side: side, Champion: req.Champion}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

// writeDomainErr maps domain sentinels onto HTTP statuses: bad input is 400,
// clashes with the current draft or series state 409, unknown sessions 404, a
// torn-down actor or registry 503.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, series.ErrBadConfig),
		errors.Is(err, series.ErrBadWinner),
		errors.Is(err, recommend.ErrUnknownRole),
		errors.Is(err, recommend.ErrBadLimit):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, series.ErrSeriesComplete),
		errors.Is(err, series.ErrBadGameNumber),
		errors.Is(err, recommend.ErrBadPhase),
		errors.Is(err, recommend.ErrTeamFull),
		errors.Is(err, draft.ErrWrongTurn),
		errors.Is(err, draft.ErrIllegalPick),
		errors.Is(err, draft.ErrIllegalBan),
		errors.Is(err, draft.ErrOutOfSequence),
		errors.Is(err, draft.ErrDraftComplete):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, registry.ErrClosed),
		errors.Is(err, session.ErrSessionClosed):
		writeErr(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
