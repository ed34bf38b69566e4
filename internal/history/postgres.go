package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/draftwise/draft-coach/internal/draft"
)

// GameRecord is the stored form of one team-game: one row per (game, team
// perspective), the full action sequence as a JSON blob. Both perspectives of
// the same match are separate rows with separate IDs.
type GameRecord struct {
	ID        string    `gorm:"primaryKey"`
	TeamID    string    `gorm:"index:idx_team_played,priority:1"`
	Side      string    `gorm:"size:8"`
	Win       bool
	PlayedAt  time.Time `gorm:"index:idx_team_played,priority:2"`
	Actions   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GameRecord) TableName() string { return "games" }

// Store is the Postgres-backed GameSource fed by the ingest command.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Open(url string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&GameRecord{})
}

func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func (s *Store) TeamGames(ctx context.Context, teamID string) ([]Game, error) {
	var rows []GameRecord
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("played_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load games for %q: %w", teamID, err)
	}

	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		g, err := row.toGame()
		if err != nil {
			// One corrupt row degrades that game, not the whole lookup.
			s.log.Warn("skipping unreadable game row",
				zap.String("game", row.ID), zap.Error(err))
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

// UpsertGame writes one game, replacing any previous version of the same row.
func (s *Store) UpsertGame(ctx context.Context, g Game) error {
	rec, err := toRecord(g)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert game %q: %w", g.ID, err)
	}
	return nil
}

func (s *Store) CountGames(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&GameRecord{}).
		Where("team_id = ?", teamID).
		Count(&n).Error
	return n, err
}

func (r GameRecord) toGame() (Game, error) {
	side, ok := draft.ParseSide(r.Side)
	if !ok {
		return Game{}, fmt.Errorf("game %q: unknown side %q", r.ID, r.Side)
	}
	var actions []draft.Action
	if err := json.Unmarshal(r.Actions, &actions); err != nil {
		return Game{}, fmt.Errorf("game %q: actions: %w", r.ID, err)
	}
	return Game{
		ID:       r.ID,
		TeamID:   r.TeamID,
		Side:     side,
		Win:      r.Win,
		PlayedAt: r.PlayedAt,
		Actions:  actions,
	}, nil
}

func toRecord(g Game) (GameRecord, error) {
	if g.ID == "" {
		return GameRecord{}, fmt.Errorf("game without id")
	}
	actions, err := json.Marshal(g.Actions)
	if err != nil {
		return GameRecord{}, fmt.Errorf("game %q: actions: %w", g.ID, err)
	}
	return GameRecord{
		ID:       g.ID,
		TeamID:   g.TeamID,
		Side:     string(g.Side),
		Win:      g.Win,
		PlayedAt: g.PlayedAt,
		Actions:  actions,
	}, nil
}
