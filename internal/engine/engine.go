// Package engine is the public face of the planning core: it owns one
// learner profile and answers recommendation and pathway queries over it.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/pathwise/internal/learner"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/recommend"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

// Engine serves one learner. Reads may run concurrently; UpdateSkillProgress
// takes the write lock.
type Engine struct {
	mu      sync.RWMutex
	catalog *skillgraph.Catalog
	profile profile.LearnerProfile
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for profile building and
// progress stamping.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds the learner's profile from rec and returns an engine over it.
func New(cat *skillgraph.Catalog, rec learner.Record, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.profile = profile.Build(cat, rec, e.now())
	e.logger.Debug("profile built",
		"learner", e.profile.UserID,
		"archetype", e.profile.Archetype,
		"pace", e.profile.LearningPace,
		"skills", len(e.profile.Skills),
	)
	return e
}

// Catalog returns the catalog the engine plans against.
func (e *Engine) Catalog() *skillgraph.Catalog {
	return e.catalog
}

// NextRecommendations returns up to limit ranked recommendations.
func (e *Engine) NextRecommendations(limit int) []recommend.Recommendation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	recs := recommend.NewGenerator(e.catalog, &e.profile).Next(limit)
	e.logger.Debug("recommendations generated", "learner", e.profile.UserID, "limit", limit, "count", len(recs))
	return recs
}

// LearningPathway returns the pathway toward goalID, or nil if the goal is
// not in the catalog.
func (e *Engine) LearningPathway(goalID string) *pathway.LearningPathway {
	e.mu.RLock()
	defer e.mu.RUnlock()

	lp := pathway.NewBuilder(e.catalog, &e.profile).Build(goalID)
	if lp == nil {
		e.logger.Debug("pathway goal not in catalog", "learner", e.profile.UserID, "goal", goalID)
		return nil
	}
	e.logger.Debug("pathway built",
		"learner", e.profile.UserID,
		"goal", goalID,
		"steps", len(lp.Steps),
		"alternatives", len(lp.AlternativePaths),
	)
	return lp
}

// UpdateSkillProgress records progress on a skill, stamped with the
// engine's clock. Unknown skill ids are ignored.
func (e *Engine) UpdateSkillProgress(skillID string, level profile.Level, confidence int) {
	e.ApplyProgress(skillID, level, confidence, e.now())
}

// ApplyProgress is UpdateSkillProgress with an explicit timestamp, used to
// replay stored progress events.
func (e *Engine) ApplyProgress(skillID string, level profile.Level, confidence int, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.profile.UpdateSkillProgress(skillID, level, confidence, at) {
		e.logger.Debug("progress for unknown skill ignored", "learner", e.profile.UserID, "skill", skillID)
		return
	}
	e.logger.Debug("progress applied", "learner", e.profile.UserID, "skill", skillID, "level", level, "confidence", confidence)
}

// RecomputeRefresh re-derives needsRefresh for every skill against the
// engine's clock. Replayed progress carries its original timestamp, so
// callers run this once the replay is done.
func (e *Engine) RecomputeRefresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.RecomputeRefresh(e.now())
}

// Profile returns a copy of the current profile.
func (e *Engine) Profile() profile.LearnerProfile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.profile.Clone()
}
