package scoring

import (
	"sort"
	"strings"

	"github.com/draftwise/draft-coach/internal/knowledge"
)

// ArchetypeService tags champions with composition styles (engage, poke,
// split, ...) and classifies a set of picks into a team profile by counting
// tag occurrences.
type ArchetypeService struct {
	base *knowledge.Base
}

func NewArchetypeService(base *knowledge.Base) *ArchetypeService {
	return &ArchetypeService{base: base}
}

// A style needs at least two carriers before it defines the composition.
const styleThreshold = 2

type TeamProfile struct {
	Primary     string         `json:"primary,omitempty"`
	Secondary   string         `json:"secondary,omitempty"`
	StyleCounts map[string]int `json:"style_counts"`
	// Damage counts by profile: ad / ap / mixed.
	Damage map[string]int `json:"damage"`
	// Tagged is how many picks had archetype data at all.
	Tagged int `json:"tagged"`
}

func (a *ArchetypeService) ChampionStyles(champion string) []string {
	entry, ok := a.base.Archetypes[champion]
	if !ok {
		return nil
	}
	return entry.Styles
}

// Classify builds a team profile from the locked picks. Champions without
// archetype data simply do not contribute; an all-unknown team yields an
// empty profile rather than an error.
func (a *ArchetypeService) Classify(picks []string) TeamProfile {
	profile := TeamProfile{
		StyleCounts: map[string]int{},
		Damage:      map[string]int{},
	}

	for _, champion := range picks {
		entry, ok := a.base.Archetypes[champion]
		if !ok {
			continue
		}
		profile.Tagged++
		for _, style := range entry.Styles {
			profile.StyleCounts[strings.ToLower(style)]++
		}
		if d := strings.ToLower(entry.Damage); d != "" {
			profile.Damage[d]++
		}
	}

	ranked := rankedStyles(profile.StyleCounts)
	if len(ranked) > 0 && profile.StyleCounts[ranked[0]] >= styleThreshold {
		profile.Primary = ranked[0]
	}
	if len(ranked) > 1 && profile.StyleCounts[ranked[1]] >= styleThreshold {
		profile.Secondary = ranked[1]
	}
	return profile
}

// rankedStyles orders styles by count desc, name asc, so classification is
// stable run to run.
func rankedStyles(counts map[string]int) []string {
	styles := make([]string, 0, len(counts))
	for style := range counts {
		styles = append(styles, style)
	}
	sort.Slice(styles, func(i, j int) bool {
		if counts[styles[i]] != counts[styles[j]] {
			return counts[styles[i]] > counts[styles[j]]
		}
		return styles[i] < styles[j]
	})
	return styles
}
