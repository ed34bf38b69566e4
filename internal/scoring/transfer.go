package scoring

import (
	"sort"

	"github.com/draftwise/draft-coach/internal/knowledge"
)

// SkillTransferService answers "they can't play X anymore, what do they reach
// for instead?" from co-play rates: players comfortable on a champion tend to
// be comfortable on its neighbors.
type SkillTransferService struct {
	base *knowledge.Base
}

func NewSkillTransferService(base *knowledge.Base) *SkillTransferService {
	return &SkillTransferService{base: base}
}

// SimilarChampions returns the ranked substitutes, best co-play rate first.
// The slice is a copy; callers can keep it.
func (s *SkillTransferService) SimilarChampions(champion string) []knowledge.TransferEntry {
	entries := s.base.Transfers[champion]
	out := make([]knowledge.TransferEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Champion < out[j].Champion
	})
	return out
}

// BestTransfer returns the highest-ranked substitute inside the availability
// set. ok is false for an empty set or when nothing ranked is available.
func (s *SkillTransferService) BestTransfer(champion string, available map[string]bool) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	for _, entry := range s.SimilarChampions(champion) {
		if available[entry.Champion] {
			return entry.Champion, true
		}
	}
	return "", false
}
