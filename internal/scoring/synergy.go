package scoring

import "github.com/draftwise/draft-coach/internal/knowledge"

// SynergyService reads played-together aggregates. Unlike matchups the table
// is symmetric: A+B and B+A are the same pair, whichever direction the
// exporter wrote.
type SynergyService struct {
	base *knowledge.Base
}

func NewSynergyService(base *knowledge.Base) *SynergyService {
	return &SynergyService{base: base}
}

// Multiplier span for the pick engine: a perfect-synergy team amplifies a
// pick by 1.2x, a disastrous one dampens it to 0.8x, no data leaves it alone.
const (
	synergyFloor = 0.8
	synergySpan  = 0.4
)

func (s *SynergyService) Pair(a, b string) Score {
	if entry, ok := s.base.Synergies[a][b]; ok && entry.Games > 0 {
		return pairScore(entry)
	}
	if entry, ok := s.base.Synergies[b][a]; ok && entry.Games > 0 {
		return pairScore(entry)
	}
	return NeutralScore()
}

// WithTeam averages the pair synergy between champion and each locked ally.
func (s *SynergyService) WithTeam(champion string, allies []string) Score {
	sum := 0.0
	n := 0
	conf := ConfidenceHigh
	for _, ally := range allies {
		sc := s.Pair(champion, ally)
		if !sc.HasData() {
			continue
		}
		sum += sc.Value
		n++
		conf = worse(conf, sc.Confidence)
	}
	if n == 0 {
		return NeutralScore()
	}
	return Score{Value: sum / float64(n), Confidence: conf}
}

// Multiplier maps team synergy onto [0.8, 1.2] with 1.0 for neutral.
func (s *SynergyService) Multiplier(champion string, allies []string) float64 {
	return synergyFloor + synergySpan*s.WithTeam(champion, allies).Value
}

// Team averages the pair synergy over every unordered pair of picks. Used by
// the evaluation layer to grade a whole composition.
func (s *SynergyService) Team(picks []string) Score {
	sum := 0.0
	n := 0
	conf := ConfidenceHigh
	for i := 0; i < len(picks); i++ {
		for j := i + 1; j < len(picks); j++ {
			sc := s.Pair(picks[i], picks[j])
			if !sc.HasData() {
				continue
			}
			sum += sc.Value
			n++
			conf = worse(conf, sc.Confidence)
		}
	}
	if n == 0 {
		return NeutralScore()
	}
	return Score{Value: sum / float64(n), Confidence: conf}
}
