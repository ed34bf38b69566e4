package types

// Protocol notes for dashboard authors. The Go request/response structs live
// in internal/types; this is the shape reference for clients in other
// languages.

// REST, all under /series
//
// POST /series — create a coached series
//   series_length: 1 | 3 | 5
//   fearless: boolean
//   our_side: "blue" | "red"
//   enemy_team_id: string
//   our_players:   [{ name, role }] // role: TOP|JUNGLE|MID|ADC|SUPPORT
//   enemy_players: [{ name, role }]
//   -> 201 { id, context }
//
// GET    /series/{id}           -> { id, context }
// DELETE /series/{id}           -> 204
//
// POST /series/{id}/actions — observe one live draft action
//   seq: number (optional, 1..20; omitted means next)
//   type: "ban" | "pick"
//   side: "blue" | "red"
//   champion: string
//   -> 200 { forecast } // out-of-turn or blocked actions answer 409
//
// POST /series/{id}/result — close the current game
//   game: number
//   winner: "blue" | "red"
//   -> 200 { context } // fresh draft for the next game, or series complete
//
// POST /series/{id}/recommend/picks
//   player: string (optional; blank falls back to the roster entry for role)
//   role: TOP|JUNGLE|MID|ADC|SUPPORT
//   limit: number (optional, default 5)
//   -> 200 [ suggestion ]
//
// POST /series/{id}/recommend/bans
//   limit: number (optional, default 5; empty body allowed)
//   -> 200 [ suggestion ]
//
// GET /series/{id}/forecast    -> 200 [ forecast entry ]
// GET /series/{id}/evaluation  -> 200 { per-side composition readout }
//
// Errors are { error: string }: 400 malformed input, 404 unknown series,
// 409 action/result illegal in the current state, 503 shutting down.

// WebSocket, GET /series/{id}/live
//
// Client -> Server
// Action:
//   type: "Action"
//   seq: number (optional)
//   action: "ban" | "pick"
//   side: "blue" | "red"
//   champion: string
//
// Result:
//   type: "Result"
//   game: number
//   winner: "blue" | "red"
//
// Server -> Client
// Snapshot (on connect and after every accepted mutation, any client):
//   type: "Snapshot"
//   snapshot: see snapshot.go
//
// Error (only to the offending client; state is unchanged):
//   type: "Error"
//   error: string
