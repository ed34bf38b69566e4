// Package types holds the wire shapes shared by the HTTP and WS layers.
// Domain results (suggestions, forecasts, series context) marshal themselves;
// this package only adds the request envelopes and the socket frame.
package types

import (
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/session"
)

type CreateSeriesRequest struct {
	SeriesLength int      `json:"series_length"`
	Fearless     bool     `json:"fearless"`
	OurSide      string   `json:"our_side"`
	EnemyTeamID  string   `json:"enemy_team_id"`
	OurPlayers   []Player `json:"our_players,omitempty"`
	EnemyPlayers []Player `json:"enemy_players,omitempty"`
}

type Player struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type CreateSeriesResponse struct {
	ID      string               `json:"id"`
	Context series.SeriesContext `json:"context"`
}

type ActionRequest struct {
	Seq      int    `json:"seq,omitempty"`
	Type     string `json:"type"`
	Side     string `json:"side"`
	Champion string `json:"champion"`
}

type ResultRequest struct {
	Game   int    `json:"game"`
	Winner string `json:"winner"`
}

type PicksRequest struct {
	Player string `json:"player,omitempty"`
	Role   string `json:"role"`
	Limit  int    `json:"limit,omitempty"`
}

type BansRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ClientMessage is what a socket client may send: live draft actions and game
// results, the same operations the REST surface offers.
type ClientMessage struct {
	Type     string `json:"type"` // "Action" | "Result"
	Seq      int    `json:"seq,omitempty"`
	Action   string `json:"action,omitempty"` // "ban" | "pick"
	Side     string `json:"side,omitempty"`
	Champion string `json:"champion,omitempty"`
	Game     int    `json:"game,omitempty"`
	Winner   string `json:"winner,omitempty"`
}

// ServerMessage is every frame the server writes.
type ServerMessage struct {
	Type     string            `json:"type"` // "Snapshot" | "Error"
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Error    string            `json:"error,omitempty"`
}
