// Package session wraps a series.Session in an actor. One goroutine owns the
// aggregate; everything else talks to it through the inbox, so the series
// state needs no locks. Watchers get a snapshot after every mutation.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/simulate"
)

// ErrSessionClosed is returned once the actor has shut down.
var ErrSessionClosed = errors.New("session closed")

type Msg interface{ isSessionMsg() }

// Watch registers a live watcher. The current snapshot is delivered to the
// outbox immediately, later ones after every state change.
type Watch struct {
	ClientID string
	Outbox   chan Snapshot
}

type Unwatch struct{ ClientID string }

type Shutdown struct{}

// DoAction applies one observed draft action.
type DoAction struct {
	Action draft.Action
	Reply  chan ActionReply
}

type ActionReply struct {
	Forecast []simulate.ForecastEntry
	Err      error
}

// DoResult closes the current game.
type DoResult struct {
	Game   int
	Winner draft.Side
	Reply  chan error
}

type AskPicks struct {
	Player string
	Role   draft.Role
	Limit  int
	Reply  chan PicksReply
}

type PicksReply struct {
	Picks []recommend.PickSuggestion
	Err   error
}

type AskBans struct {
	Limit int
	Reply chan BansReply
}

type BansReply struct {
	Bans []recommend.BanSuggestion
	Err  error
}

type AskForecast struct {
	Reply chan []simulate.ForecastEntry
}

type AskContext struct {
	Reply chan series.SeriesContext
}

type AskEval struct {
	Reply chan series.Evaluation
}

// GetView reflects actor internals without data races. Test and diagnostic
// use only.
type GetView struct {
	Reply chan View
}

func (Watch) isSessionMsg()       {}
func (Unwatch) isSessionMsg()     {}
func (Shutdown) isSessionMsg()    {}
func (DoAction) isSessionMsg()    {}
func (DoResult) isSessionMsg()    {}
func (AskPicks) isSessionMsg()    {}
func (AskBans) isSessionMsg()     {}
func (AskForecast) isSessionMsg() {}
func (AskContext) isSessionMsg()  {}
func (AskEval) isSessionMsg()     {}
func (GetView) isSessionMsg()     {}

// Snapshot is what watchers receive.
type Snapshot struct {
	Version  int                      `json:"version"`
	Context  series.SeriesContext     `json:"context"`
	Draft    draft.State              `json:"draft"`
	Forecast []simulate.ForecastEntry `json:"forecast"`
}

type View struct {
	Version     int
	NumWatchers int
	Game        int
	Complete    bool
}

type Actor struct {
	id       string
	inbox    chan Msg
	state    *series.Session
	version  int
	watchers map[string]chan Snapshot
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
}

func NewActor(parent context.Context, s *series.Session, log *zap.Logger) *Actor {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	a := &Actor{
		id:       s.ID,
		inbox:    make(chan Msg, 64),
		state:    s,
		watchers: make(map[string]chan Snapshot),
		ctx:      ctx,
		cancel:   cancel,
		log:      log.With(zap.String("session", s.ID)),
	}
	go a.loop()
	return a
}

func (a *Actor) ID() string { return a.id }

// Inbox accepts messages for the actor loop. The WS layer and tests use it
// directly; HTTP handlers go through the request/reply wrappers below.
func (a *Actor) Inbox() chan<- Msg { return a.inbox }

// Done is closed when the actor has shut down.
func (a *Actor) Done() <-chan struct{} { return a.ctx.Done() }

func (a *Actor) loop() {
	for {
		select {
		case <-a.ctx.Done():
			a.shutdown()
			return

		case m := <-a.inbox:
			switch msg := m.(type) {
			case Watch:
				a.watchers[msg.ClientID] = msg.Outbox
				msg.Outbox <- a.snapshot()

			case Unwatch:
				// Closing the outbox is what lets the connection's writer
				// goroutine exit.
				if ch, ok := a.watchers[msg.ClientID]; ok {
					close(ch)
					delete(a.watchers, msg.ClientID)
				}

			case DoAction:
				forecast, err := a.state.ObserveAction(msg.Action)
				if err == nil {
					a.version++
					a.broadcast()
				}
				msg.Reply <- ActionReply{Forecast: forecast, Err: err}

			case DoResult:
				err := a.state.RecordGameResult(a.ctx, msg.Game, msg.Winner)
				if err == nil {
					a.version++
					a.broadcast()
				}
				msg.Reply <- err

			case AskPicks:
				picks, err := a.state.RecommendPicks(msg.Player, msg.Role, msg.Limit)
				msg.Reply <- PicksReply{Picks: picks, Err: err}

			case AskBans:
				bans, err := a.state.RecommendBans(msg.Limit)
				msg.Reply <- BansReply{Bans: bans, Err: err}

			case AskForecast:
				msg.Reply <- a.state.Forecast()

			case AskContext:
				msg.Reply <- a.state.SeriesContext()

			case AskEval:
				msg.Reply <- a.state.Evaluate()

			case GetView:
				msg.Reply <- View{
					Version:     a.version,
					NumWatchers: len(a.watchers),
					Game:        a.state.Game,
					Complete:    a.state.Done,
				}

			case Shutdown:
				a.shutdown()
				return
			}
		}
	}
}

func (a *Actor) shutdown() {
	for id, ch := range a.watchers {
		close(ch)
		delete(a.watchers, id)
	}
	a.cancel()
	a.log.Info("session actor stopped")
}

func (a *Actor) snapshot() Snapshot {
	return Snapshot{
		Version:  a.version,
		Context:  a.state.SeriesContext(),
		Draft:    a.state.Draft,
		Forecast: a.state.Forecast(),
	}
}

func (a *Actor) broadcast() {
	snap := a.snapshot()
	for id, ch := range a.watchers {
		select {
		case ch <- snap:
		default:
			// Watcher is slow or full. Drop it rather than stall the loop.
			close(ch)
			delete(a.watchers, id)
			a.log.Warn("dropped slow watcher", zap.String("client", id))
		}
	}
}
