package types

// Snapshot:
//   version: number // bumps on every accepted mutation
//   context:
//     game: number // 1-based, current game of the series
//     complete: boolean
//     wins: { blue: number, red: number }
//     blocked: { [champion]: { side, game } } // fearless pool, with origin
//     previous: [ { game, winner, picks: { blue, red }, bans: { blue, red } } ]
//     sides:
//       blue|red:
//         prioritized: string[]    // champions contested in 2+ games
//         first_picks: string[]    // one per completed game, in order
//         banned_against: string[] // everything the opponent banned
//   draft:
//     actions: [ { seq, type: "ban"|"pick", side, champion } ]
//   forecast: // one entry per remaining enemy step the simulator can fill
//     [ { seq, champion, type, source: "script"|"fallback",
//         substituted?: boolean, scripted?: string } ]
