package registry

import (
	"context"

	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/session"
)

// Synchronous wrappers for the HTTP layer.

func (r *Registry) CreateSession(ctx context.Context, cfg series.Config) (*session.Actor, error) {
	reply := make(chan CreateReply, 1)
	select {
	case r.inbox <- Create{Config: cfg, Reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.ctx.Done():
		return nil, ErrClosed
	}
	select {
	case cr := <-reply:
		return cr.Actor, cr.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.ctx.Done():
		return nil, ErrClosed
	}
}

func (r *Registry) GetSession(ctx context.Context, id string) (*session.Actor, error) {
	reply := make(chan *session.Actor, 1)
	select {
	case r.inbox <- Get{ID: id, Reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.ctx.Done():
		return nil, ErrClosed
	}
	select {
	case a := <-reply:
		if a == nil {
			return nil, ErrNotFound
		}
		return a, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.ctx.Done():
		return nil, ErrClosed
	}
}

func (r *Registry) RemoveSession(ctx context.Context, id string) error {
	select {
	case r.inbox <- Remove{ID: id}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return ErrClosed
	}
}
