// Package registry owns the live session actors. It is itself an actor: one
// goroutine holds the id map, creations and lookups are messages, and a
// periodic sweep evicts sessions nobody has touched within the TTL.
package registry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/session"
)

// ErrClosed is returned once the registry has shut down.
var ErrClosed = errors.New("registry closed")

// ErrNotFound is returned for lookups of unknown or evicted sessions.
var ErrNotFound = errors.New("session not found")

type Msg interface{ isRegistryMsg() }

type Create struct {
	Config series.Config
	Reply  chan CreateReply
}

type CreateReply struct {
	Actor *session.Actor
	Err   error
}

type Get struct {
	ID    string
	Reply chan *session.Actor // nil when unknown
}

type Remove struct{ ID string }

type Shutdown struct{}

type GetStats struct {
	Reply chan Stats
}

type Stats struct{ Sessions int }

func (Create) isRegistryMsg()   {}
func (Get) isRegistryMsg()      {}
func (Remove) isRegistryMsg()   {}
func (Shutdown) isRegistryMsg() {}
func (GetStats) isRegistryMsg() {}

// Options tune eviction. TTL <= 0 disables the sweep entirely.
type Options struct {
	TTL        time.Duration
	SweepEvery time.Duration
}

type entry struct {
	actor    *session.Actor
	lastSeen time.Time
}

type Registry struct {
	inbox  chan Msg
	deps   series.Deps
	opts   Options
	items  map[string]*entry
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func New(parent context.Context, deps series.Deps, opts Options, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.SweepEvery <= 0 {
		opts.SweepEvery = time.Minute
	}
	ctx, cancel := context.WithCancel(parent)
	r := &Registry{
		inbox:  make(chan Msg, 64),
		deps:   deps,
		opts:   opts,
		items:  make(map[string]*entry),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	go r.loop()
	return r
}

func (r *Registry) Inbox() chan<- Msg { return r.inbox }

func (r *Registry) loop() {
	var tick <-chan time.Time
	if r.opts.TTL > 0 {
		ticker := time.NewTicker(r.opts.SweepEvery)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-r.ctx.Done():
			r.shutdownAll()
			return

		case <-tick:
			r.evictIdle()

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Create:
				s, err := series.NewSession(r.ctx, msg.Config, r.deps)
				if err != nil {
					msg.Reply <- CreateReply{Err: err}
					break
				}
				a := session.NewActor(r.ctx, s, r.log)
				r.items[a.ID()] = &entry{actor: a, lastSeen: time.Now()}
				r.log.Info("session created",
					zap.String("session", a.ID()),
					zap.Int("open_sessions", len(r.items)))
				msg.Reply <- CreateReply{Actor: a}

			case Get:
				e := r.items[msg.ID]
				if e == nil {
					msg.Reply <- nil
					break
				}
				e.lastSeen = time.Now()
				msg.Reply <- e.actor

			case Remove:
				if e := r.items[msg.ID]; e != nil {
					e.actor.Inbox() <- session.Shutdown{}
					delete(r.items, msg.ID)
					r.log.Info("session removed", zap.String("session", msg.ID))
				}

			case GetStats:
				msg.Reply <- Stats{Sessions: len(r.items)}

			case Shutdown:
				r.shutdownAll()
				return
			}
		}
	}
}

func (r *Registry) evictIdle() {
	cutoff := time.Now().Add(-r.opts.TTL)
	for id, e := range r.items {
		if e.lastSeen.After(cutoff) {
			continue
		}
		e.actor.Inbox() <- session.Shutdown{}
		delete(r.items, id)
		r.log.Info("session evicted", zap.String("session", id))
	}
}

func (r *Registry) shutdownAll() {
	for id, e := range r.items {
		e.actor.Inbox() <- session.Shutdown{}
		delete(r.items, id)
	}
	r.cancel()
}
