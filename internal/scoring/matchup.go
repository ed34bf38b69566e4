package scoring

import "github.com/draftwise/draft-coach/internal/knowledge"

// MatchupCalculator reads champion-vs-champion head-to-heads. The table is
// sparse, so a miss on A->B falls back to the inverse of B->A before giving
// up and going neutral.
type MatchupCalculator struct {
	base *knowledge.Base
}

func NewMatchupCalculator(base *knowledge.Base) *MatchupCalculator {
	return &MatchupCalculator{base: base}
}

// Pair tables run thinner than player histories; the tiers reflect that.
const (
	pairHighGames   = 12
	pairMediumGames = 5
)

// Lane scores how champion does into enemy: >0.5 favored, <0.5 countered.
func (m *MatchupCalculator) Lane(champion, enemy string) Score {
	if entry, ok := m.base.Matchups[champion][enemy]; ok && entry.Games > 0 {
		return pairScore(entry)
	}
	if entry, ok := m.base.Matchups[enemy][champion]; ok && entry.Games > 0 {
		inverted := knowledge.PairEntry{Games: entry.Games, Wins: entry.Games - entry.Wins}
		return pairScore(inverted)
	}
	return NeutralScore()
}

// VsTeam averages the lane scores against every enemy pick that has data.
// Confidence is the weakest contributing tier; no data at all stays neutral.
func (m *MatchupCalculator) VsTeam(champion string, enemies []string) Score {
	sum := 0.0
	n := 0
	conf := ConfidenceHigh
	for _, enemy := range enemies {
		s := m.Lane(champion, enemy)
		if !s.HasData() {
			continue
		}
		sum += s.Value
		n++
		conf = worse(conf, s.Confidence)
	}
	if n == 0 {
		return NeutralScore()
	}
	return Score{Value: sum / float64(n), Confidence: conf}
}

func pairScore(entry knowledge.PairEntry) Score {
	return Score{
		Value:      shrunkWinRate(entry.Wins, entry.Games),
		Confidence: sampleConfidence(entry.Games, pairHighGames, pairMediumGames),
	}
}
