// Package series owns one coached best-of-N: the live draft, the enemy
// forecast, completed game results, and the fearless-blocked set. A Session
// is not safe for concurrent use; the session actor serializes access.
package series

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/scoring"
	"github.com/draftwise/draft-coach/internal/simulate"
)

var ErrBadConfig = errors.New("invalid series config")
var ErrSeriesComplete = errors.New("series already complete")
var ErrBadGameNumber = errors.New("result for wrong game")
var ErrBadWinner = errors.New("winner must be blue or red")

const maxSeriesLength = 7

// Player is a roster slot. The role is advisory: it routes recommendations,
// it never constrains what the draft accepts.
type Player struct {
	Name string     `json:"name"`
	Role draft.Role `json:"role"`
}

type Config struct {
	// SeriesLength is the best-of-N length: odd, 1 up to 7.
	SeriesLength int        `json:"series_length"`
	Fearless     bool       `json:"fearless"`
	OurSide      draft.Side `json:"our_side"`
	EnemyTeamID  string     `json:"enemy_team_id"`
	OurPlayers   []Player   `json:"our_players,omitempty"`
	EnemyPlayers []Player   `json:"enemy_players,omitempty"`
}

func (c Config) validate() error {
	if c.SeriesLength < 1 || c.SeriesLength > maxSeriesLength || c.SeriesLength%2 == 0 {
		return fmt.Errorf("%w: series length %d", ErrBadConfig, c.SeriesLength)
	}
	if c.OurSide != draft.SideBlue && c.OurSide != draft.SideRed {
		return fmt.Errorf("%w: side %q", ErrBadConfig, c.OurSide)
	}
	if len(c.OurPlayers) > 5 || len(c.EnemyPlayers) > 5 {
		return fmt.Errorf("%w: more than five players on a roster", ErrBadConfig)
	}
	return nil
}

// winTarget is the majority: 2 of 3, 3 of 5.
func (c Config) winTarget() int {
	return c.SeriesLength/2 + 1
}

// Provenance records where a fearless block came from, display only.
type Provenance struct {
	Side draft.Side `json:"side"`
	Game int        `json:"game"`
}

// GameResult is one closed game: who won and the draft as it stood.
type GameResult struct {
	Game    int            `json:"game"`
	Winner  draft.Side     `json:"winner"`
	Actions []draft.Action `json:"actions"`
}

// Deps are the shared services a session draws on. One Deps value serves
// every session; nothing in it is mutated.
type Deps struct {
	Scores    *scoring.Set
	Simulator *simulate.Simulator
	Weights   recommend.Weights
	Log       *zap.Logger
}

// Session is the aggregate for one coached series.
type Session struct {
	ID        string    `json:"id"`
	Config    Config    `json:"config"`
	CreatedAt time.Time `json:"created_at"`

	// Game is the current 1-based game number.
	Game     int                     `json:"game"`
	Draft    draft.State             `json:"draft"`
	Strategy *simulate.EnemyStrategy `json:"strategy"`

	Results []GameResult          `json:"results"`
	Blocked map[string]Provenance `json:"blocked"`
	Wins    map[draft.Side]int    `json:"wins"`
	Done    bool                  `json:"done"`

	usedRefs map[string]bool

	scores *scoring.Set
	sim    *simulate.Simulator
	picks  *recommend.PickEngine
	bans   *recommend.BanEngine
	eval   *recommend.TeamEvaluator
	log    *zap.Logger
}

// NewSession starts a series: fresh draft, enemy strategy built from the
// opponent's record.
func NewSession(ctx context.Context, cfg Config, deps Deps) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		CreatedAt: time.Now().UTC(),
		Game:      1,
		Draft:     draft.NewState(nil),
		Blocked:   map[string]Provenance{},
		Wins:      map[draft.Side]int{},
		usedRefs:  map[string]bool{},
		scores:    deps.Scores,
		sim:       deps.Simulator,
		picks:     recommend.NewPickEngine(deps.Scores, deps.Weights),
		bans:      recommend.NewBanEngine(deps.Scores),
		eval:      recommend.NewTeamEvaluator(deps.Scores),
		log:       log,
	}
	if err := s.rebuildStrategy(ctx); err != nil {
		return nil, err
	}

	s.log.Info("series started",
		zap.String("session", s.ID),
		zap.String("enemy", cfg.EnemyTeamID),
		zap.Int("best_of", cfg.SeriesLength),
		zap.Bool("fearless", cfg.Fearless))
	return s, nil
}

func (s *Session) EnemySide() draft.Side {
	return s.Config.OurSide.Opponent()
}

// ObserveAction feeds one live draft action in. Enemy actions advance the
// forecast cursor; the refreshed forecast comes back either way.
func (s *Session) ObserveAction(a draft.Action) ([]simulate.ForecastEntry, error) {
	if s.Done {
		return nil, ErrSeriesComplete
	}
	next, err := draft.Observe(s.Draft, a)
	if err != nil {
		return nil, err
	}
	s.Draft = next
	if a.Side == s.EnemySide() {
		s.Strategy.Advance()
	}
	return s.Forecast(), nil
}

// RecordGameResult closes the current game. In fearless mode every champion
// picked in it joins the blocked set. The session either advances to a fresh
// game with a rebuilt strategy or completes the series.
func (s *Session) RecordGameResult(ctx context.Context, game int, winner draft.Side) error {
	if s.Done {
		return ErrSeriesComplete
	}
	if game != s.Game {
		return fmt.Errorf("%w: got %d, current game is %d", ErrBadGameNumber, game, s.Game)
	}
	if winner != draft.SideBlue && winner != draft.SideRed {
		return fmt.Errorf("%w: %q", ErrBadWinner, winner)
	}

	result := GameResult{Game: game, Winner: winner, Actions: s.Draft.Actions}
	s.Results = append(s.Results, result)
	s.Wins[winner]++

	if s.Config.Fearless {
		for _, a := range result.Actions {
			if a.Type == draft.ActionPick {
				s.Blocked[a.Champion] = Provenance{Side: a.Side, Game: game}
			}
		}
	}

	if s.Wins[winner] >= s.Config.winTarget() {
		s.Done = true
		s.log.Info("series complete",
			zap.String("session", s.ID),
			zap.String("winner", string(winner)),
			zap.Int("games", len(s.Results)))
		return nil
	}

	s.Game++
	s.Draft = draft.NewState(s.blockedSet())
	if err := s.rebuildStrategy(ctx); err != nil {
		// The result is already on the books; the stale strategy stays
		// usable until the next rebuild succeeds.
		s.log.Warn("strategy rebuild failed, keeping previous",
			zap.String("session", s.ID), zap.Error(err))
		return err
	}

	s.log.Info("next game",
		zap.String("session", s.ID),
		zap.Int("game", s.Game),
		zap.Int("blocked", len(s.Blocked)))
	return nil
}

// Forecast is the remaining predicted enemy draft for the current game.
func (s *Session) Forecast() []simulate.ForecastEntry {
	return s.Strategy.Forecast(s.Draft, s.predictionContext(), s.scores.Flex)
}

// RecommendPicks answers for the given role on our side. An empty player
// falls back to whoever holds that role on our roster.
func (s *Session) RecommendPicks(player string, role draft.Role, limit int) ([]recommend.PickSuggestion, error) {
	if player == "" {
		player = s.playerForRole(role)
	}
	return s.picks.RecommendPicks(recommend.PickRequest{
		Player:          player,
		Role:            role,
		OurPicks:        s.Draft.Picks(s.Config.OurSide),
		EnemyPicks:      s.Draft.Picks(s.EnemySide()),
		Banned:          s.allBans(),
		FearlessBlocked: s.blockedList(),
		PickCount:       s.Draft.PickCount(),
		Limit:           limit,
	})
}

// RecommendBans answers for the draft's current ban phase.
func (s *Session) RecommendBans(limit int) ([]recommend.BanSuggestion, error) {
	return s.bans.RecommendBans(recommend.BanRequest{
		EnemyPlayers:    playerNames(s.Config.EnemyPlayers),
		OurPicks:        s.Draft.Picks(s.Config.OurSide),
		EnemyPicks:      s.Draft.Picks(s.EnemySide()),
		Banned:          s.allBans(),
		FearlessBlocked: s.blockedList(),
		Phase:           s.Draft.Phase(),
		Limit:           limit,
	})
}

// Evaluation pairs both sides' composition readouts.
type Evaluation struct {
	Ours  recommend.TeamEvaluation `json:"ours"`
	Enemy recommend.TeamEvaluation `json:"enemy"`
}

func (s *Session) Evaluate() Evaluation {
	return Evaluation{
		Ours:  s.eval.Evaluate(s.Config.OurSide, s.Draft.Picks(s.Config.OurSide)),
		Enemy: s.eval.Evaluate(s.EnemySide(), s.Draft.Picks(s.EnemySide())),
	}
}

func (s *Session) rebuildStrategy(ctx context.Context) error {
	strat, err := s.sim.BuildStrategy(ctx, s.Config.EnemyTeamID, s.EnemySide(), simulate.BuildContext{
		Blocked:  s.blockedSet(),
		UsedRefs: s.usedRefs,
	})
	if err != nil {
		return err
	}
	if strat.ReferenceID != "" {
		s.usedRefs[strat.ReferenceID] = true
	}
	s.Strategy = strat
	return nil
}

func (s *Session) predictionContext() simulate.PredictionContext {
	unavailable := s.blockedSet()
	for _, a := range s.Draft.Actions {
		unavailable[a.Champion] = true
	}
	return simulate.PredictionContext{
		Unavailable: unavailable,
		EnemyPicks:  s.Draft.Picks(s.EnemySide()),
	}
}

func (s *Session) blockedSet() map[string]bool {
	out := make(map[string]bool, len(s.Blocked))
	for champion := range s.Blocked {
		out[champion] = true
	}
	return out
}

func (s *Session) blockedList() []string {
	out := make([]string, 0, len(s.Blocked))
	for champion := range s.Blocked {
		out = append(out, champion)
	}
	sort.Strings(out)
	return out
}

func (s *Session) allBans() []string {
	return append(s.Draft.Bans(draft.SideBlue), s.Draft.Bans(draft.SideRed)...)
}

func (s *Session) playerForRole(role draft.Role) string {
	for _, p := range s.Config.OurPlayers {
		if p.Role == role {
			return p.Name
		}
	}
	return ""
}

func playerNames(players []Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}
