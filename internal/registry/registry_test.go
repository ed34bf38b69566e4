package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/draftwise/draft-coach/internal/draft"
	"github.com/draftwise/draft-coach/internal/history"
	"github.com/draftwise/draft-coach/internal/knowledge"
	"github.com/draftwise/draft-coach/internal/recommend"
	"github.com/draftwise/draft-coach/internal/scoring"
	"github.com/draftwise/draft-coach/internal/series"
	"github.com/draftwise/draft-coach/internal/simulate"
)

func testDeps() series.Deps {
	return series.Deps{
		Scores:    scoring.NewSet(knowledge.NewBase()),
		Simulator: simulate.NewSimulator(history.None{}, zap.NewNop()),
		Weights:   recommend.DefaultWeights(),
		Log:       zap.NewNop(),
	}
}

func testConfig() series.Config {
	return series.Config{
		SeriesLength: 3,
		OurSide:      draft.SideBlue,
		EnemyTeamID:  "DRX",
	}
}

func waitClosed(t *testing.T, done <-chan struct{}, within time.Duration) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(within):
		t.Fatalf("timed out waiting for shutdown")
	}
}

func TestRegistry_CreateGetSamePointer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, testDeps(), Options{}, zap.NewNop())

	a1, err := r.CreateSession(ctx, testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a2, err := r.GetSession(ctx, a1.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a1 != a2 {
		t.Fatalf("expected same actor pointer")
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, testDeps(), Options{}, zap.NewNop())

	_, err := r.GetSession(ctx, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRegistry_CreateRejectsBadConfig(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, testDeps(), Options{}, zap.NewNop())

	cfg := testConfig()
	cfg.SeriesLength = 4
	_, err := r.CreateSession(ctx, cfg)
	if !errors.Is(err, series.ErrBadConfig) {
		t.Fatalf("want ErrBadConfig, got %v", err)
	}
}

func TestRegistry_RemoveShutsActorDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, testDeps(), Options{}, zap.NewNop())

	a, err := r.CreateSession(ctx, testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.RemoveSession(ctx, a.ID()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	waitClosed(t, a.Done(), time.Second)

	if _, err := r.GetSession(ctx, a.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after remove, got %v", err)
	}
}

func TestRegistry_EvictsIdleSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, testDeps(), Options{TTL: 50 * time.Millisecond, SweepEvery: 10 * time.Millisecond}, zap.NewNop())

	a, err := r.CreateSession(ctx, testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	waitClosed(t, a.Done(), time.Second)

	if _, err := r.GetSession(ctx, a.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after eviction, got %v", err)
	}
}

func TestRegistry_ShutdownCascades(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, testDeps(), Options{}, zap.NewNop())

	a, err := r.CreateSession(ctx, testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r.Inbox() <- Shutdown{}
	waitClosed(t, a.Done(), time.Second)

	if _, err := r.CreateSession(ctx, testConfig()); !errors.Is(err, ErrClosed) {
		t.Fatalf("want ErrClosed after shutdown, got %v", err)
	}
}
