// Command ingest loads a JSON game export into the Postgres history store.
// Rows are upserted by game id, so re-running the same export is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/config"
	"github.com/draftwise/draft-coach/internal/history"
)

func main() {
	file := flag.String("file", "", "path to the JSON game export (required)")
	dryRun := flag.Bool("dry-run", false, "parse and summarize without writing")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -file <export.json> [-dry-run]")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *file, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	games, err := history.ReadGames(file)
	if err != nil {
		return err
	}

	stats := map[string]*teamStats{}
	for _, g := range games {
		st := stats[g.TeamID]
		if st == nil {
			st = &teamStats{}
			stats[g.TeamID] = st
		}
		st.total++
		if g.Win {
			st.wins++
		}
		if !g.Complete() {
			st.incomplete++
		}
	}

	if dryRun {
		log.Info("dry run, nothing written", zap.Int("games", len(games)))
		printSummary(stats, 0)
		return nil
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	store, err := history.Open(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	written := 0
	for _, g := range games {
		if err := store.UpsertGame(ctx, g); err != nil {
			log.Warn("skipping game", zap.String("game", g.ID), zap.Error(err))
			continue
		}
		written++
	}
	log.Info("ingest finished",
		zap.Int("games", len(games)),
		zap.Int("written", written))

	for team, st := range stats {
		n, err := store.CountGames(ctx, team)
		if err != nil {
			return fmt.Errorf("counting games for %q: %w", team, err)
		}
		st.stored = n
	}
	printSummary(stats, written)
	return nil
}

type teamStats struct {
	total      int
	wins       int
	incomplete int
	stored     int64
}

func printSummary(stats map[string]*teamStats, written int) {
	teams := make([]string, 0, len(stats))
	for team := range stats {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Team", "Games", "Wins", "Incomplete", "In store")

	for _, team := range teams {
		st := stats[team]
		stored := "-"
		if written > 0 {
			stored = fmt.Sprintf("%d", st.stored)
		}
		table.Append(
			team,
			fmt.Sprintf("%d", st.total),
			fmt.Sprintf("%d", st.wins),
			fmt.Sprintf("%d", st.incomplete),
			stored,
		)
	}
	table.Render()
}
