package scoring

import (
	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/knowledge"
)

// FlexResolver decides which roles a champion can actually be sent to right
// now. Current-era signals outrank the career history: an explicit
// current-viable list wins, then the current role distribution (10% share
// threshold), and when neither exists the answer is "no current data" — the
// career canonical role is reported for display but never used as a silent
// fallback.
type FlexResolver struct {
	base *knowledge.Base
}

func NewFlexResolver(base *knowledge.Base) *FlexResolver {
	return &FlexResolver{base: base}
}

// viabilityThreshold is the minimum distribution share for a role to count.
const viabilityThreshold = 0.10

type RoleResolution struct {
	// Roles the champion is currently viable in, in canonical order.
	Roles []draft.Role `json:"roles,omitempty"`
	// Primary is the single role, or the distribution arg-max for a flex
	// champion. Ties break on canonical role order.
	Primary draft.Role `json:"primary,omitempty"`
	Flex    bool       `json:"flex"`
	// HasCurrentData is false when only career-long data (or nothing) exists.
	HasCurrentData bool `json:"has_current_data"`
	// Canonical is the career-long role list, display only.
	Canonical []draft.Role `json:"canonical,omitempty"`
}

func (f *FlexResolver) Resolve(champion string) RoleResolution {
	entry, ok := f.base.Roles[champion]
	if !ok {
		return RoleResolution{}
	}

	res := RoleResolution{Canonical: parseRoles(entry.Canonical)}

	if viable := parseRoles(entry.CurrentViable); len(viable) > 0 {
		res.Roles = viable
		res.HasCurrentData = true
		res.Flex = len(viable) > 1
		res.Primary = pickPrimary(viable, parseDistribution(entry.Distribution))
		return res
	}

	if dist := parseDistribution(entry.Distribution); len(dist) > 0 {
		var viable []draft.Role
		for _, role := range draft.RoleOrder {
			if dist[role] >= viabilityThreshold {
				viable = append(viable, role)
			}
		}
		if len(viable) > 0 {
			res.Roles = viable
			res.HasCurrentData = true
			res.Flex = len(viable) > 1
			res.Primary = pickPrimary(viable, dist)
			return res
		}
	}

	return res
}

// ViableIn is the pick-engine filter. With no role table loaded at all the
// filter degrades open (everything passes, matching the neutral-on-missing
// rule); with a table present, a champion without current data cannot be
// placed in any role.
func (f *FlexResolver) ViableIn(champion string, role draft.Role) bool {
	if len(f.base.Roles) == 0 {
		return true
	}
	res := f.Resolve(champion)
	if !res.HasCurrentData {
		return false
	}
	for _, r := range res.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func parseRoles(raw []string) []draft.Role {
	seen := map[draft.Role]bool{}
	for _, s := range raw {
		if role, ok := draft.ParseRole(s); ok {
			seen[role] = true
		}
	}
	var out []draft.Role
	for _, role := range draft.RoleOrder {
		if seen[role] {
			out = append(out, role)
		}
	}
	return out
}

func parseDistribution(raw map[string]float64) map[draft.Role]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := map[draft.Role]float64{}
	for s, share := range raw {
		if role, ok := draft.ParseRole(s); ok {
			// Duplicate spellings of one role collapse onto it.
			out[role] += share
		}
	}
	return out
}

// pickPrimary returns the arg-max share among the viable roles. Roles are
// scanned in canonical order, so an exact tie lands on the canonically first
// role, never on map iteration luck.
func pickPrimary(viable []draft.Role, dist map[draft.Role]float64) draft.Role {
	if len(viable) == 1 {
		return viable[0]
	}
	best := viable[0]
	bestShare := dist[best]
	for _, role := range viable[1:] {
		if dist[role] > bestShare {
			best = role
			bestShare = dist[role]
		}
	}
	return best
}
