package scoring

import (
	"math"

	"github.com/draftwise/draft-coach/internal/knowledge"
)

// TournamentScorer reads the cross-tournament aggregate: how much a champion
// gets picked or banned in pro play and how it performs when it shows up.
// Presence matters on its own; a 60% pick+ban champion is a draft problem
// even at a 50% win rate.
type TournamentScorer struct {
	base *knowledge.Base
}

func NewTournamentScorer(base *knowledge.Base) *TournamentScorer {
	return &TournamentScorer{base: base}
}

const (
	tournamentWinWeight      = 0.6
	tournamentPresenceWeight = 0.4
)

func (t *TournamentScorer) Score(champion string) Score {
	entry, ok := t.base.Tournament[champion]
	if !ok {
		return NeutralScore()
	}

	presence := math.Min(1, entry.PickRate+entry.BanRate)
	if entry.Games <= 0 && presence == 0 {
		// An empty aggregate row tells us nothing.
		return NeutralScore()
	}

	value := clamp01(tournamentWinWeight*shrunkWinRate(entry.Wins, entry.Games) +
		tournamentPresenceWeight*presence)

	conf := sampleConfidence(entry.Games, 20, 8)
	if conf == ConfidenceNoData {
		// Ban-only champions: respected but never played. Thin signal.
		conf = ConfidenceLow
	}
	return Score{Value: value, Confidence: conf}
}
