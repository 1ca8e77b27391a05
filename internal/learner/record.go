// Package learner defines the learner progress record consumed by the
// profile builder, and decodes it from JSON.
package learner

import (
	"strings"
	"time"
)

// Record is one learner's progress snapshot as delivered by the host
// platform.
type Record struct {
	ID                 string       `json:"id"`
	Archetype          string       `json:"archetype,omitempty"`
	CompletedScenarios []string     `json:"completedScenarios"`
	GrowthAreas        []GrowthArea `json:"growthAreas"`
}

// GrowthArea is a coarse 0-10 competency score. Score and LastUpdated are
// optional on the wire; an area missing either is ignored.
type GrowthArea struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Score       *float64   `json:"score,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Valid reports whether the area carries everything needed to seed a skill
// state.
func (g GrowthArea) Valid() bool {
	return strings.TrimSpace(g.Name) != "" && g.Score != nil && g.LastUpdated != nil
}

// ClampedScore returns the score limited to the 0-10 range. It returns 0
// for an area without a score.
func (g GrowthArea) ClampedScore() float64 {
	if g.Score == nil {
		return 0
	}
	return min(max(*g.Score, 0), 10)
}

// CompletedSet returns the completed scenario ids as a set.
func (r Record) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(r.CompletedScenarios))
	for _, id := range r.CompletedScenarios {
		set[id] = true
	}
	return set
}
