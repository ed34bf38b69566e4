package session

import (
	"context"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/simulate"
)

// Request/reply wrappers over the inbox. Each one is a plain synchronous call
// for the HTTP layer: send the message, wait for the reply, bail out if the
// caller or the actor goes away first.

func (a *Actor) send(ctx context.Context, m Msg) error {
	select {
	case a.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-a.ctx.Done():
		return ErrSessionClosed
	}
}

func recv[T any](ctx context.Context, a *Actor, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-a.ctx.Done():
		return zero, ErrSessionClosed
	}
}

func (a *Actor) Observe(ctx context.Context, action draft.Action) ([]simulate.ForecastEntry, error) {
	reply := make(chan ActionReply, 1)
	if err := a.send(ctx, DoAction{Action: action, Reply: reply}); err != nil {
		return nil, err
	}
	r, err := recv(ctx, a, reply)
	if err != nil {
		return nil, err
	}
	return r.Forecast, r.Err
}

func (a *Actor) RecordResult(ctx context.Context, game int, winner draft.Side) error {
	reply := make(chan error, 1)
	if err := a.send(ctx, DoResult{Game: game, Winner: winner, Reply: reply}); err != nil {
		return err
	}
	r, err := recv(ctx, a, reply)
	if err != nil {
		return err
	}
	return r
}

func (a *Actor) RecommendPicks(ctx context.Context, player string, role draft.Role, limit int) ([]recommend.PickSuggestion, error) {
	reply := make(chan PicksReply, 1)
	if err := a.send(ctx, AskPicks{Player: player, Role: role, Limit: limit, Reply: reply}); err != nil {
		return nil, err
	}
	r, err := recv(ctx, a, reply)
	if err != nil {
		return nil, err
	}
	return r.Picks, r.Err
}

func (a *Actor) RecommendBans(ctx context.Context, limit int) ([]recommend.BanSuggestion, error) {
	reply := make(chan BansReply, 1)
	if err := a.send(ctx, AskBans{Limit: limit, Reply: reply}); err != nil {
		return nil, err
	}
	r, err := recv(ctx, a, reply)
	if err != nil {
		return nil, err
	}
	return r.Bans, r.Err
}

func (a *Actor) Forecast(ctx context.Context) ([]simulate.ForecastEntry, error) {
	reply := make(chan []simulate.ForecastEntry, 1)
	if err := a.send(ctx, AskForecast{Reply: reply}); err != nil {
		return nil, err
	}
	return recv(ctx, a, reply)
}

func (a *Actor) Context(ctx context.Context) (series.SeriesContext, error) {
	reply := make(chan series.SeriesContext, 1)
	if err := a.send(ctx, AskContext{Reply: reply}); err != nil {
		return series.SeriesContext{}, err
	}
	return recv(ctx, a, reply)
}

func (a *Actor) Evaluation(ctx context.Context) (series.Evaluation, error) {
	reply := make(chan series.Evaluation, 1)
	if err := a.send(ctx, AskEval{Reply: reply}); err != nil {
		return series.Evaluation{}, err
	}
	return recv(ctx, a, reply)
}
