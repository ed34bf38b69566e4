// Package knowledge loads the precomputed data tables the scorers read:
// meta tiers, tournament aggregates, player histories, matchups, synergies,
// archetypes, role-phase distributions, skill transfers and role viability.
// Everything is loaded once at startup and immutable afterwards. A missing or
// malformed file is logged and leaves its table empty; the scorers then fall
// back to their neutral defaults, so a broken export never stops the process.
package knowledge

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/draft"
)

const (
	MetaFile        = "meta_tiers.json"
	TournamentFile  = "tournament_stats.json"
	ProficiencyFile = "proficiency.json"
	MatchupFile     = "matchups.json"
	SynergyFile     = "synergies.json"
	ArchetypeFile   = "archetypes.json"
	RolePhaseFile   = "role_phase.json"
	TransferFile    = "skill_transfers.json"
	RoleFile        = "role_viability.json"
)

type MetaEntry struct {
	Tier  string `json:"tier"`
	Patch string `json:"patch,omitempty"`
}

type TournamentEntry struct {
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	PickRate float64 `json:"pick_rate"`
	BanRate  float64 `json:"ban_rate"`
}

type ProficiencyEntry struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
	// Recent is games on the current patch era; informational only.
	Recent int `json:"recent,omitempty"`
}

// PairEntry is a head-to-head (matchups) or played-together (synergies)
// aggregate for a champion pair.
type PairEntry struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

type ArchetypeEntry struct {
	Styles []string `json:"styles"`
	Damage string   `json:"damage,omitempty"` // "ad" | "ap" | "mixed"
}

type TransferEntry struct {
	Champion string  `json:"champion"`
	Rate     float64 `json:"rate"` // co-play rate, higher = closer substitute
}

type RoleEntry struct {
	Canonical     []string           `json:"canonical_roles,omitempty"`
	CurrentViable []string           `json:"current_viable_roles,omitempty"`
	Distribution  map[string]float64 `json:"current_distribution,omitempty"`
}

// Base is the whole knowledge snapshot. Champion and player keys are the
// names used by the exporter; lookups that miss resolve to neutral values in
// the scoring layer, never here.
type Base struct {
	Meta        map[string]MetaEntry
	Tournament  map[string]TournamentEntry
	Proficiency map[string]map[string]ProficiencyEntry
	Matchups    map[string]map[string]PairEntry
	Synergies   map[string]map[string]PairEntry
	Archetypes  map[string]ArchetypeEntry
	RolePhase   map[int]map[draft.Role]float64
	Transfers   map[string][]TransferEntry
	Roles       map[string]RoleEntry

	champions []string
}

func NewBase() *Base {
	return &Base{
		Meta:        map[string]MetaEntry{},
		Tournament:  map[string]TournamentEntry{},
		Proficiency: map[string]map[string]ProficiencyEntry{},
		Matchups:    map[string]map[string]PairEntry{},
		Synergies:   map[string]map[string]PairEntry{},
		Archetypes:  map[string]ArchetypeEntry{},
		RolePhase:   map[int]map[draft.Role]float64{},
		Transfers:   map[string][]TransferEntry{},
		Roles:       map[string]RoleEntry{},
	}
}

// Load reads every knowledge file under dir. It always returns a usable Base;
// per-file problems are logged and degrade that one table.
func Load(dir string, log *zap.Logger) *Base {
	b := NewBase()

	loadFile(filepath.Join(dir, MetaFile), &b.Meta, log)
	loadFile(filepath.Join(dir, TournamentFile), &b.Tournament, log)
	loadFile(filepath.Join(dir, ProficiencyFile), &b.Proficiency, log)
	loadFile(filepath.Join(dir, MatchupFile), &b.Matchups, log)
	loadFile(filepath.Join(dir, SynergyFile), &b.Synergies, log)
	loadFile(filepath.Join(dir, ArchetypeFile), &b.Archetypes, log)
	loadFile(filepath.Join(dir, RoleFile), &b.Roles, log)

	var rawTransfers map[string][]TransferEntry
	loadFile(filepath.Join(dir, TransferFile), &rawTransfers, log)
	for champ, entries := range rawTransfers {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Rate != entries[j].Rate {
				return entries[i].Rate > entries[j].Rate
			}
			return entries[i].Champion < entries[j].Champion
		})
		b.Transfers[champ] = entries
	}

	var rawPhase map[string]map[string]float64
	loadFile(filepath.Join(dir, RolePhaseFile), &rawPhase, log)
	for key, dist := range rawPhase {
		count, err := strconv.Atoi(key)
		if err != nil || count < 0 {
			log.Warn("skipping role-phase row with bad pick-count key",
				zap.String("key", key))
			continue
		}
		row := map[draft.Role]float64{}
		for rawRole, p := range dist {
			role, ok := draft.ParseRole(rawRole)
			if !ok {
				log.Warn("skipping unknown role in role-phase row",
					zap.String("role", rawRole), zap.Int("pick_count", count))
				continue
			}
			row[role] = p
		}
		b.RolePhase[count] = row
	}

	b.indexChampions()
	log.Info("knowledge base loaded",
		zap.Int("champions", len(b.champions)),
		zap.Int("players", len(b.Proficiency)),
		zap.Int("role_phase_rows", len(b.RolePhase)))
	return b
}

func loadFile[T any](path string, into *T, log *zap.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("knowledge file missing, table stays empty", zap.String("file", path))
		} else {
			log.Warn("knowledge file unreadable, table stays empty",
				zap.String("file", path), zap.Error(err))
		}
		return
	}
	var parsed T
	if err := json.Unmarshal(data, &parsed); err != nil {
		log.Warn("malformed knowledge file, table stays empty",
			zap.String("file", path), zap.Error(err))
		return
	}
	*into = parsed
}

// Champions is the full champion universe: every name any table knows about.
// Sorted so candidate pools iterate deterministically. Load indexes eagerly;
// bases assembled by hand get indexed on first call.
func (b *Base) Champions() []string {
	if b.champions == nil {
		b.indexChampions()
	}
	return b.champions
}

func (b *Base) indexChampions() {
	seen := map[string]bool{}
	for c := range b.Meta {
		seen[c] = true
	}
	for c := range b.Tournament {
		seen[c] = true
	}
	for c := range b.Roles {
		seen[c] = true
	}
	for c := range b.Archetypes {
		seen[c] = true
	}
	for c := range b.Matchups {
		seen[c] = true
	}
	for c := range b.Synergies {
		seen[c] = true
	}
	for c := range b.Transfers {
		seen[c] = true
	}

	b.champions = make([]string, 0, len(seen))
	for c := range seen {
		b.champions = append(b.champions, c)
	}
	sort.Strings(b.champions)
}
