package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftwise/draft-coach/internal/config"
	"github.com/draftwise/draft-coach/internal/history"
	"github.com/draftwise/draft-coach/internal/httpapi"
	"github.com/draftwise/draft-coach/internal/knowledge"
	"github.com/draftwise/draft-coach/internal/registry"
	"github.com/draftwise/draft-coach/internal/scoring"
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/simulate"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	base := knowledge.Load(cfg.DataDir, log)

	var source history.GameSource = history.None{}
	switch {
	case cfg.DatabaseURL != "":
		store, err := history.Open(cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("game history from postgres")
		source = store
	case cfg.HistoryFile != "":
		snap, err := history.LoadSnapshot(cfg.HistoryFile)
		if err != nil {
			return fmt.Errorf("loading history snapshot: %w", err)
		}
		log.Info("game history from snapshot",
			zap.String("file", cfg.HistoryFile),
			zap.Int("teams", len(snap.Teams())))
		source = snap
	default:
		log.Warn("no game history configured, enemy forecasts will be empty")
	}

	deps := series.Deps{
		Scores:    scoring.NewSet(base),
		Simulator: simulate.NewSimulator(source, log),
		Weights:   config.LoadWeights(cfg.WeightsFile, log),
		Log:       log,
	}
	reg := registry.New(ctx, deps, registry.Options{TTL: cfg.SessionTTL}, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.SetupRoutes(reg),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Cancelling ctx also shuts the registry down, which closes every
		// session's websocket watchers and lets Shutdown drain.
		<-gctx.Done()
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
