package scoring

import (
	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/knowledge"
)

// RolePhaseScorer penalizes picks that pro teams do not make at this point of
// the draft. It is a pure multiplier, never a boost: a support first-pick is
// suppressed relative to the norm, but a normal-timing pick is untouched.
type RolePhaseScorer struct {
	base *knowledge.Base
}

func NewRolePhaseScorer(base *knowledge.Base) *RolePhaseScorer {
	return &RolePhaseScorer{base: base}
}

// uniformRoleShare is the no-information expectation: 1 of 5 roles.
const uniformRoleShare = 0.20

// Multiplier returns min(1, empirical/0.20) for the role at the given count
// of already-locked picks. An unloaded table, or a pick count the table has
// no row for, is neutral 1.0 for every role. Inside a loaded row an absent
// role really was never picked there, so it scores 0.
func (r *RolePhaseScorer) Multiplier(role draft.Role, pickCount int) float64 {
	if len(r.base.RolePhase) == 0 {
		return 1.0
	}
	row, ok := r.base.RolePhase[pickCount]
	if !ok {
		return 1.0
	}
	m := row[role] / uniformRoleShare
	if m > 1 {
		m = 1
	}
	if m < 0 {
		m = 0
	}
	return m
}
