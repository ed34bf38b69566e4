package recommend

import (
	"fmt"
	"sort"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/scoring"
)

// Ban priority weights. First rotation is about denial: raw strength and the
// enemy's comfort on it. Second rotation knows our composition, so counter
// pressure against our locked picks joins the blend.
const (
	ban1StrengthWeight = 0.50
	ban1ThreatWeight   = 0.50

	ban2StrengthWeight = 0.35
	ban2ThreatWeight   = 0.45
	ban2CounterWeight  = 0.20

	// targetLeadMargin is how far ahead of the runner-up the best enemy
	// player must be before we name them as the target of the ban.
	targetLeadMargin = 0.05
)

type BanRequest struct {
	// EnemyPlayers is the opposing roster; threat is the best proficiency
	// among them.
	EnemyPlayers    []string
	OurPicks        []string
	EnemyPicks      []string
	Banned          []string
	FearlessBlocked []string
	// Phase must be one of the two ban phases.
	Phase draft.Phase
	Limit int
}

type BanSuggestion struct {
	Champion string  `json:"champion"`
	Priority float64 `json:"priority"`
	// Strength is the context-free half: meta tier and tournament presence.
	Strength float64 `json:"strength"`
	// Threat is the best enemy proficiency on the champion.
	Threat scoring.Score `json:"threat"`
	// Counter is how the champion performs into our locked picks. Only
	// weighted in the second ban phase, reported in both.
	Counter scoring.Score `json:"counter"`
	// TargetPlayer is set when one enemy player clearly owns the champion.
	TargetPlayer string `json:"target_player,omitempty"`
	// LikelyFallback is what the enemy probably reaches for once this ban
	// lands, from the skill-transfer table.
	LikelyFallback string `json:"likely_fallback,omitempty"`
	Tier           string `json:"tier,omitempty"`
}

// BanEngine ranks ban candidates against a known enemy roster.
type BanEngine struct {
	scores *scoring.Set
}

func NewBanEngine(scores *scoring.Set) *BanEngine {
	return &BanEngine{scores: scores}
}

// RecommendBans returns the ranked ban candidates. Picked, banned and
// fearless-blocked champions are excluded outright, never merely penalized.
func (e *BanEngine) RecommendBans(req BanRequest) ([]BanSuggestion, error) {
	if req.Phase != draft.PhaseBan1 && req.Phase != draft.PhaseBan2 {
		return nil, fmt.Errorf("%w: %q", ErrBadPhase, req.Phase)
	}
	if req.Limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadLimit, req.Limit)
	}

	taken := unavailableSet(req.OurPicks, req.EnemyPicks, req.Banned, req.FearlessBlocked)

	// What the enemy can still reach for; candidates get removed one at a
	// time below to model the pool after that ban lands.
	available := map[string]bool{}
	for _, champion := range e.scores.Champions() {
		if !taken[champion] {
			available[champion] = true
		}
	}

	out := []BanSuggestion{}
	for _, champion := range e.scores.Champions() {
		if taken[champion] {
			continue
		}
		delete(available, champion)
		out = append(out, e.scoreCandidate(champion, req, available))
		available[champion] = true
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		if out[i].Threat.Value != out[j].Threat.Value {
			return out[i].Threat.Value > out[j].Threat.Value
		}
		return out[i].Champion < out[j].Champion
	})
	if len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

func (e *BanEngine) scoreCandidate(champion string, req BanRequest, available map[string]bool) BanSuggestion {
	meta := e.scores.Meta.Score(champion)
	tournament := e.scores.Tournament.Score(champion)
	strength := (meta.Value + tournament.Value) / 2

	threat := scoring.NeutralScore()
	target := ""
	if roster := e.scores.Proficiency.Roster(req.EnemyPlayers, champion); len(roster) > 0 {
		threat = roster[0].Score
		if threat.HasData() &&
			(len(roster) == 1 || threat.Value-roster[1].Score.Value >= targetLeadMargin) {
			target = roster[0].Player
		}
	}

	counter := e.scores.Matchup.VsTeam(champion, req.OurPicks)

	var priority float64
	if req.Phase == draft.PhaseBan1 {
		priority = ban1StrengthWeight*strength + ban1ThreatWeight*threat.Value
	} else {
		priority = ban2StrengthWeight*strength + ban2ThreatWeight*threat.Value +
			ban2CounterWeight*counter.Value
	}

	fallback, _ := e.scores.Transfer.BestTransfer(champion, available)

	return BanSuggestion{
		Champion:       champion,
		Priority:       priority,
		Strength:       strength,
		Threat:         threat,
		Counter:        counter,
		TargetPlayer:   target,
		LikelyFallback: fallback,
		Tier:           e.scores.Meta.TierLabel(champion),
	}
}
