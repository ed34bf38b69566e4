package scoring

import (
	"strings"

	"github.com/draftwise/draft-coach/internal/knowledge"
)

// MetaScorer maps the curated per-patch tier list onto [0,1]. Tiers are
// hand-curated, so a present entry carries high confidence by definition.
type MetaScorer struct {
	base *knowledge.Base
}

func NewMetaScorer(base *knowledge.Base) *MetaScorer {
	return &MetaScorer{base: base}
}

var tierValues = map[string]float64{
	"S+": 1.0,
	"S":  0.95,
	"A":  0.80,
	"B":  0.65,
	"C":  0.50,
	"D":  0.35,
}

func (m *MetaScorer) Score(champion string) Score {
	entry, ok := m.base.Meta[champion]
	if !ok {
		return NeutralScore()
	}
	value, ok := tierValues[strings.ToUpper(strings.TrimSpace(entry.Tier))]
	if !ok {
		// Entry exists but the label is unusable; better than nothing, barely.
		return Score{Value: Neutral, Confidence: ConfidenceLow}
	}
	return Score{Value: value, Confidence: ConfidenceHigh}
}

// TierLabel returns the raw tier for display and tie-breaking ("" if absent).
func (m *MetaScorer) TierLabel(champion string) string {
	return m.base.Meta[champion].Tier
}
