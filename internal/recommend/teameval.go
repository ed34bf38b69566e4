package recommend

import (
	"fmt"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/scoring"
)

// Team synergy grades for the narrative lines.
const (
	synergyStrong = 0.55
	synergyWeak   = 0.45
)

// TeamEvaluation is the coach-facing readout of one side's locked picks:
// composition profile, historical pair synergy, and short strength/weakness
// narratives derived from both.
type TeamEvaluation struct {
	Side       draft.Side          `json:"side"`
	Picks      []string            `json:"picks"`
	Profile    scoring.TeamProfile `json:"profile"`
	Synergy    scoring.Score       `json:"synergy"`
	Strengths  []string            `json:"strengths"`
	Weaknesses []string            `json:"weaknesses"`
}

type TeamEvaluator struct {
	scores *scoring.Set
}

func NewTeamEvaluator(scores *scoring.Set) *TeamEvaluator {
	return &TeamEvaluator{scores: scores}
}

// Evaluate profiles the picks a side has locked so far. Fewer than two picks
// yields an empty readout rather than noise.
func (e *TeamEvaluator) Evaluate(side draft.Side, picks []string) TeamEvaluation {
	ev := TeamEvaluation{
		Side:       side,
		Picks:      picks,
		Profile:    e.scores.Archetype.Classify(picks),
		Synergy:    e.scores.Synergy.Team(picks),
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	if len(picks) < 2 {
		return ev
	}

	e.describeStyle(&ev)
	e.describeSynergy(&ev)
	e.describeDamage(&ev)
	return ev
}

func (e *TeamEvaluator) describeStyle(ev *TeamEvaluation) {
	p := ev.Profile
	if p.Primary != "" {
		line := fmt.Sprintf("committed %s identity (%d champions)", p.Primary, p.StyleCounts[p.Primary])
		if p.Secondary != "" {
			line += fmt.Sprintf(" with a %s backup plan", p.Secondary)
		}
		ev.Strengths = append(ev.Strengths, line)
		return
	}
	if p.Tagged >= 2 {
		ev.Weaknesses = append(ev.Weaknesses, "no shared composition identity yet")
	}
}

func (e *TeamEvaluator) describeSynergy(ev *TeamEvaluation) {
	if !ev.Synergy.HasData() {
		return
	}
	switch {
	case ev.Synergy.Value >= synergyStrong:
		ev.Strengths = append(ev.Strengths,
			fmt.Sprintf("pairs with a winning record together (%.0f%%)", 100*ev.Synergy.Value))
	case ev.Synergy.Value <= synergyWeak:
		ev.Weaknesses = append(ev.Weaknesses,
			fmt.Sprintf("pairs that historically lose together (%.0f%%)", 100*ev.Synergy.Value))
	}
}

func (e *TeamEvaluator) describeDamage(ev *TeamEvaluation) {
	p := ev.Profile
	physical := p.Damage["ad"]
	magic := p.Damage["ap"]
	mixed := p.Damage["mixed"]
	typed := physical + magic + mixed
	if typed < 3 {
		return
	}
	switch {
	case magic == 0 && mixed == 0:
		ev.Weaknesses = append(ev.Weaknesses, "all physical damage, cheap to armor against")
	case physical == 0 && mixed == 0:
		ev.Weaknesses = append(ev.Weaknesses, "all magic damage, cheap to itemize against")
	case physical > 0 && magic > 0:
		ev.Strengths = append(ev.Strengths, "mixed damage profile, hard to itemize against")
	}
}
