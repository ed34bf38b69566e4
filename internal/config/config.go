// Package config assembles runtime configuration from the environment, with
// an optional .env file for local runs and an optional YAML file for the
// recommendation weights.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/draftwise/draft-coach/internal/recommend"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DataDir holds the exported knowledge tables.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// DatabaseURL enables the Postgres history source. When empty,
	// HistoryFile is tried next, then the simulator runs without history.
	DatabaseURL string `env:"DATABASE_URL"`
	HistoryFile string `env:"HISTORY_FILE"`

	// SessionTTL evicts series sessions nobody has touched. Zero disables
	// eviction.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	WeightsFile string `env:"WEIGHTS_FILE"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// LoadWeights reads the pick-signal weights, falling back to the defaults on
// any problem. A bad weights file should never stop the process.
func LoadWeights(path string, log *zap.Logger) recommend.Weights {
	if path == "" {
		return recommend.DefaultWeights()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("weights file unreadable, using defaults",
			zap.String("file", path), zap.Error(err))
		return recommend.DefaultWeights()
	}
	w := recommend.DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		log.Warn("malformed weights file, using defaults",
			zap.String("file", path), zap.Error(err))
		return recommend.DefaultWeights()
	}
	if w.Meta < 0 || w.Tournament < 0 || w.Proficiency < 0 || w.Matchup < 0 {
		log.Warn("negative weight in weights file, using defaults",
			zap.String("file", path))
		return recommend.DefaultWeights()
	}
	log.Info("pick weights loaded",
		zap.Float64("meta", w.Meta),
		zap.Float64("tournament", w.Tournament),
		zap.Float64("proficiency", w.Proficiency),
		zap.Float64("matchup", w.Matchup))
	return w
}
