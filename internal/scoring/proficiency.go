package scoring

import (
	"sort"

	"github.com/draftwise/draft-coach/internal/knowledge"
)

// ProficiencyScorer reads per-player champion history. Sample sizes are small
// and noisy, so the win rate is shrunk toward neutral and the confidence tier
// tells the caller how much to trust it.
type ProficiencyScorer struct {
	base *knowledge.Base
}

func NewProficiencyScorer(base *knowledge.Base) *ProficiencyScorer {
	return &ProficiencyScorer{base: base}
}

func (p *ProficiencyScorer) Score(player, champion string) Score {
	history, ok := p.base.Proficiency[player]
	if !ok {
		return NeutralScore()
	}
	entry, ok := history[champion]
	if !ok || entry.Games <= 0 {
		return NeutralScore()
	}
	return Score{
		Value:      shrunkWinRate(entry.Wins, entry.Games),
		Confidence: sampleConfidence(entry.Games, 15, 6),
	}
}

type PlayerScore struct {
	Player string `json:"player"`
	Score  Score  `json:"score"`
}

// Roster scores every listed player on the champion, best first. Players with
// data always rank ahead of players without; ties break on the player name so
// the order never wobbles.
func (p *ProficiencyScorer) Roster(players []string, champion string) []PlayerScore {
	out := make([]PlayerScore, 0, len(players))
	for _, player := range players {
		out = append(out, PlayerScore{Player: player, Score: p.Score(player, champion)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Score.HasData(), out[j].Score.HasData()
		if di != dj {
			return di
		}
		if out[i].Score.Value != out[j].Score.Value {
			return out[i].Score.Value > out[j].Score.Value
		}
		return out[i].Player < out[j].Player
	})
	return out
}
