// Package ws serves the live series feed. Each connection becomes one watcher
// on the session actor: snapshots stream out after every state change, and the
// client may push draft actions and game results back over the same socket.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/registry"
	"github.com/draftwise/draft-coach/internal/session"
	"github.com/draftwise/draft-coach/internal/types"
)

const writeTimeout = 3 * time.Second

func Handler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		actor, err := reg.GetSession(r.Context(), id)
		if err != nil {
			status := http.StatusNotFound
			if !errors.Is(err, registry.ErrNotFound) {
				status = http.StatusServiceUnavailable
			}
			http.Error(w, err.Error(), status)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := uuid.NewString()

		actor.Inbox() <- session.Watch{ClientID: clientID, Outbox: out}
		defer func() {
			select {
			case actor.Inbox() <- session.Unwatch{ClientID: clientID}:
			case <-actor.Done():
			}
		}()

		// Writer goroutine. When the outbox closes (watcher dropped or actor
		// shut down) it closes the conn, which unblocks the reader below.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "Snapshot", Snapshot: &snap}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			conn.Close(websocket.StatusGoingAway, "session closed")
		}()

		// Reader loop. No read deadline: a coach dashboard may listen for
		// minutes without sending anything.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			if err := dispatch(r.Context(), actor, cm); err != nil {
				writeError(r.Context(), conn, err.Error())
			}
			// On success the new snapshot arrives through the watcher outbox.
		}
	}
}

func dispatch(ctx context.Context, actor *session.Actor, m types.ClientMessage) error {
	switch m.Type {
	case "Action":
		action, err := toAction(m)
		if err != nil {
			return err
		}
		_, err = actor.Observe(ctx, action)
		return err

	case "Result":
		winner, ok := draft.ParseSide(m.Winner)
		if !ok {
			return errors.New("unknown winner side")
		}
		return actor.RecordResult(ctx, m.Game, winner)

	default:
		return errors.New("unknown message type")
	}
}

func toAction(m types.ClientMessage) (draft.Action, error) {
	typ, ok := draft.ParseActionType(m.Action)
	if !ok {
		return draft.Action{}, errors.New("unknown action type")
	}
	side, ok := draft.ParseSide(m.Side)
	if !ok {
		return draft.Action{}, errors.New("unknown side")
	}
	if m.Champion == "" {
		return draft.Action{}, errors.New("champion required")
	}
	return draft.Action{Seq: m.Seq, Type: typ, Side: side, Champion: m.Champion}, nil
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}
