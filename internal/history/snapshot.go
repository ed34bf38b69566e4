package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// SnapshotSource serves games from a JSON export file: a flat array of Game
// objects. Read once at startup, immutable afterwards. Meant for runs without
// a database and for tests.
type SnapshotSource struct {
	byTeam map[string][]Game
}

// ReadGames parses a JSON export file: a flat array of Game objects. The
// ingest command and LoadSnapshot share the format.
func ReadGames(path string) ([]Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game export: %w", err)
	}
	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("parse game export %q: %w", path, err)
	}
	return games, nil
}

func LoadSnapshot(path string) (*SnapshotSource, error) {
	games, err := ReadGames(path)
	if err != nil {
		return nil, err
	}

	s := &SnapshotSource{byTeam: map[string][]Game{}}
	for _, g := range games {
		s.byTeam[g.TeamID] = append(s.byTeam[g.TeamID], g)
	}
	for team := range s.byTeam {
		list := s.byTeam[team]
		sort.Slice(list, func(i, j int) bool {
			if !list[i].PlayedAt.Equal(list[j].PlayedAt) {
				return list[i].PlayedAt.Before(list[j].PlayedAt)
			}
			return list[i].ID < list[j].ID
		})
	}
	return s, nil
}

func (s *SnapshotSource) TeamGames(_ context.Context, teamID string) ([]Game, error) {
	games := s.byTeam[teamID]
	out := make([]Game, len(games))
	copy(out, games)
	return out, nil
}

// Teams lists every team in the snapshot, sorted.
func (s *SnapshotSource) Teams() []string {
	out := make([]string, 0, len(s.byTeam))
	for team := range s.byTeam {
		out = append(out, team)
	}
	sort.Strings(out)
	return out
}
