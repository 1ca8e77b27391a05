package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/pathwise/internal/coach"
	"github.com/abhisek/pathwise/internal/engine"
	"github.com/abhisek/pathwise/internal/learner"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

func testEngine(archetype string, scenarios int) *engine.Engine {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rec := learner.Record{ID: "u-1", Archetype: archetype}
	for i := 0; i < scenarios; i++ {
		rec.CompletedScenarios = append(rec.CompletedScenarios, "scn-"+string(rune('a'+i)))
	}
	return engine.New(skillgraph.Default(), rec, engine.WithClock(func() time.Time { return now }))
}

func TestBar(t *testing.T) {
	r := New(true)
	tests := []struct {
		in   int
		want string
	}{
		{0, "[--------------------]"},
		{50, "[##########----------]"},
		{100, "[####################]"},
		{150, "[####################]"},
		{-5, "[--------------------]"},
	}
	for _, tt := range tests {
		if got := r.Bar(tt.in); got != tt.want {
			t.Errorf("Bar(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlainHasNoEscapes(t *testing.T) {
	e := testEngine("analyst", 0)
	r := New(true)
	out := r.Recommendations(e.NextRecommendations(3)) +
		r.Pathway(e.LearningPathway("feedback-delivery")) +
		r.Profile(e.Profile(), e.Catalog()) +
		r.Catalog(e.Catalog(), "")
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains ANSI escapes")
	}
}

func TestRecommendations(t *testing.T) {
	e := testEngine("analyst", 0)
	out := New(true).Recommendations(e.NextRecommendations(2))
	assert.Contains(t, out, "1. Clear Expression [prerequisite] priority 85")
	assert.Contains(t, out, "start with:")

	assert.Contains(t, New(true).Recommendations(nil), "No recommendations")
}

func TestPathway(t *testing.T) {
	e := testEngine("analyst", 0) // thorough pace: Deep Mastery alternative
	out := New(true).Pathway(e.LearningPathway("feedback-delivery"))

	assert.True(t, strings.HasPrefix(out, "Pathway to Feedback Delivery (3 months)"), out)
	assert.Contains(t, out, "  1. Clear Expression")
	assert.Contains(t, out, " 11. Feedback Delivery")
	assert.Contains(t, out, "Goal skill: Feedback Delivery")
	assert.Contains(t, out, pathway.DeepMasteryName)

	empty := New(true).Pathway(&pathway.LearningPathway{GoalSkill: "Empathy", TotalEstimatedTime: "0 weeks"})
	assert.Contains(t, empty, "Already mastered")
}

func TestProfile(t *testing.T) {
	e := testEngine("driver", 0)
	e.UpdateSkillProgress("empathy", profile.LevelCompetent, 60)

	out := New(true).Profile(e.Profile(), e.Catalog())
	assert.Contains(t, out, "Learner u-1")
	assert.Contains(t, out, "archetype driver")
	assert.Contains(t, out, "goals Empathy, Active Listening, Delegation")
	assert.Contains(t, out, "Emotional Intelligence")
	assert.Contains(t, out, "competent  [############--------]  60%")
}

func TestCatalogFilter(t *testing.T) {
	cat := skillgraph.Default()
	out := New(true).Catalog(cat, "leadership")
	assert.Contains(t, out, "Leadership")
	assert.NotContains(t, out, "Communication")
	assert.Contains(t, out, "delegation")
}

func TestBriefing(t *testing.T) {
	out := New(true).Briefing(&coach.Briefing{Headline: "H", Summary: "S", FirstStepTip: "T"})
	assert.Equal(t, "H\nS\nTip: T\n\n", out)

	styled := New(false).Briefing(&coach.Briefing{Headline: "H", Summary: "S", FirstStepTip: "T"})
	assert.Contains(t, styled, "╭")
}

func TestKeyValues(t *testing.T) {
	out := New(true).KeyValues("Version", map[string]string{"catalog": "v1.0.0", "build": "dev"})
	assert.Equal(t, "Version\n  build    dev\n  catalog  v1.0.0\n", out)
}
