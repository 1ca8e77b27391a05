package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/mod/semver"

	"github.com/abhisek/pathwise/internal/coach"
	"github.com/abhisek/pathwise/internal/engine"
	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/skillgraph"
	"github.com/abhisek/pathwise/internal/store"
)

// loadCatalog loads the configured catalog and enforces the downgrade
// guard against the version last recorded in s.
func loadCatalog(ctx context.Context, s *store.Store) (*skillgraph.Catalog, error) {
	cat, err := skillgraph.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	meta := s.MetaRepo()
	recorded, err := meta.Get(ctx, store.MetaCatalogVersion)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if err := skillgraph.CheckUpgrade(recorded, cat.Version()); err != nil {
		if !cfg.AllowDowngrade {
			return nil, fmt.Errorf("%w (pass --allow-downgrade to use it anyway)", err)
		}
		slog.Warn("using older catalog", "recorded", recorded, "loaded", cat.Version())
		return cat, nil
	}

	if recorded == "" || semver.Compare(cat.Version(), recorded) > 0 {
		if err := meta.Set(ctx, store.MetaCatalogVersion, cat.Version()); err != nil {
			return nil, fmt.Errorf("record catalog version: %w", err)
		}
	}
	return cat, nil
}

// loadEngine builds the learner's profile from the stored record and
// replays every stored progress event onto it.
func loadEngine(ctx context.Context, s *store.Store, cat *skillgraph.Catalog, learnerID string) (*engine.Engine, error) {
	rec, err := s.RecordRepo().Get(ctx, learnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("learner %q not found (import a record first)", learnerID)
		}
		return nil, err
	}

	e := engine.New(cat, rec, engine.WithLogger(slog.Default()))

	events, err := s.ProgressRepo().ForLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		e.ApplyProgress(ev.SkillID, ev.Level, ev.Confidence, ev.Timestamp)
	}
	e.RecomputeRefresh()
	slog.Debug("progress replayed", "learner", learnerID, "events", len(events))
	return e, nil
}

// openLearner is the common prologue of learner-scoped commands.
func openLearner(ctx context.Context, learnerID string) (*store.Store, *engine.Engine, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	cat, err := loadCatalog(ctx, s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	e, err := loadEngine(ctx, s, cat, learnerID)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, e, nil
}

// newCoach returns a briefing coach, or an error when no LLM provider is
// configured or discoverable.
func newCoach(ctx context.Context, s *store.Store) (*coach.Coach, error) {
	llmCfg, ok := llm.Discover(cfg.LLM)
	if !ok {
		return nil, fmt.Errorf("--explain needs an LLM provider: set llm.provider or an API key (%w)", llm.ErrNotConfigured)
	}
	provider, err := llm.NewProvider(ctx, llmCfg, s.EventRepo(), slog.Default())
	if err != nil {
		return nil, err
	}
	cc := coach.DefaultConfig()
	if cfg.LLM.MaxTokens > 0 {
		cc.MaxTokens = cfg.LLM.MaxTokens
	}
	return coach.New(provider, cc), nil
}

// explain runs brief with the configured LLM timeout and prints the
// briefing. Failures are reported but never fail the command.
func explain(ctx context.Context, s *store.Store, out func(string), brief func(context.Context, *coach.Coach) (*coach.Briefing, error)) {
	c, err := newCoach(ctx, s)
	if err != nil {
		out(renderer().Error(err.Error()))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.LLM.Timeout)
	defer cancel()

	b, err := brief(ctx, c)
	if err != nil {
		slog.Warn("briefing failed", "err", err)
		out(renderer().Error("briefing unavailable: " + err.Error()))
		return
	}
	out(renderer().Briefing(b))
}
