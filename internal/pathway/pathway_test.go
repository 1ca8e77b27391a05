package pathway

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/learner"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

var now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func builder(cat *skillgraph.Catalog, rec learner.Record) *Builder {
	p := profile.Build(cat, rec, now)
	return NewBuilder(cat, &p)
}

func scenarios(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("unrelated-%d", i)
	}
	return out
}

type numbered struct {
	id    string
	order int
}

func orders(steps []Step) []numbered {
	out := make([]numbered, len(steps))
	for i, s := range steps {
		out[i] = numbered{s.SkillID, s.Order}
	}
	return out
}

func skill(id string, level skillgraph.Level, prereqs ...string) skillgraph.Skill {
	return skillgraph.Skill{ID: id, Name: id, Category: "test", Level: level, Prerequisites: prereqs}
}

func TestBuild_UnknownGoal(t *testing.T) {
	b := builder(skillgraph.Default(), learner.Record{ID: "u"})
	if got := b.Build("does-not-exist"); got != nil {
		t.Errorf("Build(does-not-exist) = %+v, want nil", got)
	}
}

func TestBuild_FeedbackDelivery(t *testing.T) {
	lp := builder(skillgraph.Default(), learner.Record{ID: "u"}).Build("feedback-delivery")
	require.NotNil(t, lp)

	assert.Equal(t, "Feedback Delivery", lp.GoalSkill)
	want := []numbered{
		{"clear-expression", 1},
		{"self-awareness", 2},
		{"assertiveness", 5},
		{"active-listening", 4},
		{"empathy", 6},
		{"feedback-delivery", 11},
	}
	assert.Equal(t, want, orders(lp.Steps))
	assert.Equal(t, "3 months", lp.TotalEstimatedTime)

	assert.Equal(t, "Prerequisite for Assertiveness", lp.Steps[0].Reasoning)
	assert.Equal(t, "Goal skill: Feedback Delivery", lp.Steps[5].Reasoning)
	assert.Equal(t, []string{"Assertiveness", "Empathy"}, lp.Steps[5].Prerequisites)
	assert.NotEmpty(t, lp.Steps[5].Actions)
}

func TestBuild_ChainOrders(t *testing.T) {
	cat := skillgraph.New("v1.0.0", []skillgraph.Skill{
		skill("a", skillgraph.LevelFoundational),
		skill("b", skillgraph.LevelBridge, "a"),
		skill("c", skillgraph.LevelAdvanced, "b"),
	})
	lp := builder(cat, learner.Record{ID: "u"}).Build("c")
	require.NotNil(t, lp)
	assert.Equal(t, []numbered{{"a", 1}, {"b", 3}, {"c", 5}}, orders(lp.Steps))
}

func TestBuild_DiamondDedup(t *testing.T) {
	cat := skillgraph.New("v1.0.0", []skillgraph.Skill{
		skill("d", skillgraph.LevelFoundational),
		skill("b", skillgraph.LevelBridge, "d"),
		skill("c", skillgraph.LevelBridge, "d"),
		skill("a", skillgraph.LevelAdvanced, "b", "c"),
	})
	lp := builder(cat, learner.Record{ID: "u"}).Build("a")
	require.NotNil(t, lp)

	assert.Equal(t, []numbered{{"d", 1}, {"b", 3}, {"c", 3}, {"a", 7}}, orders(lp.Steps))

	seen := map[string]int{}
	for i, s := range lp.Steps {
		if _, dup := seen[s.SkillID]; dup {
			t.Errorf("duplicate step %q", s.SkillID)
		}
		seen[s.SkillID] = i
	}
	assert.Less(t, seen["d"], seen["b"])
	assert.Less(t, seen["d"], seen["c"])
}

func TestBuild_CycleTerminates(t *testing.T) {
	cat := skillgraph.New("v1.0.0", []skillgraph.Skill{
		skill("x", skillgraph.LevelBridge, "y"),
		skill("y", skillgraph.LevelBridge, "x"),
	})
	lp := builder(cat, learner.Record{ID: "u"}).Build("x")
	require.NotNil(t, lp)
	assert.Equal(t, []numbered{{"y", 1}, {"x", 3}}, orders(lp.Steps))
}

func TestBuild_UnresolvedPrerequisiteSkipped(t *testing.T) {
	cat := skillgraph.New("v1.0.0", []skillgraph.Skill{
		skill("a", skillgraph.LevelFoundational),
		skill("b", skillgraph.LevelBridge, "a", "ghost"),
	})
	lp := builder(cat, learner.Record{ID: "u"}).Build("b")
	require.NotNil(t, lp)
	assert.Equal(t, []numbered{{"a", 1}, {"b", 3}}, orders(lp.Steps))
}

func TestBuild_MasteredSkillsOmitted(t *testing.T) {
	score := 9.0
	ts := now
	rec := learner.Record{ID: "u", GrowthAreas: []learner.GrowthArea{
		{Name: "Assertiveness", Score: &score, LastUpdated: &ts},
	}}
	lp := builder(skillgraph.Default(), rec).Build("assertiveness")
	require.NotNil(t, lp)
	assert.Equal(t, []numbered{{"clear-expression", 1}, {"self-awareness", 2}}, orders(lp.Steps))
}

func TestBuild_GoalAndPrereqsMastered(t *testing.T) {
	score := 9.0
	ts := now
	rec := learner.Record{ID: "u", GrowthAreas: []learner.GrowthArea{
		{Name: "Active Listening", Score: &score, LastUpdated: &ts},
	}}
	lp := builder(skillgraph.Default(), rec).Build("active-listening")
	require.NotNil(t, lp)
	assert.NotNil(t, lp.Steps)
	assert.Empty(t, lp.Steps)
	assert.Equal(t, "0 weeks", lp.TotalEstimatedTime)
}

func TestBuild_ReasoningIncludesCurrentLevel(t *testing.T) {
	score := 4.0
	ts := now
	rec := learner.Record{ID: "u", GrowthAreas: []learner.GrowthArea{
		{Name: "Empathy", Score: &score, LastUpdated: &ts},
	}}
	lp := builder(skillgraph.Default(), rec).Build("empathy")
	require.NotNil(t, lp)
	require.Len(t, lp.Steps, 2)
	assert.Equal(t, "Prerequisite for Empathy", lp.Steps[0].Reasoning)
	assert.Equal(t, "Goal skill: Empathy (currently developing)", lp.Steps[1].Reasoning)
}

func TestBuild_ModeratePaceHasNoAlternatives(t *testing.T) {
	b := builder(skillgraph.Default(), learner.Record{ID: "u", CompletedScenarios: scenarios(5)})
	for _, sk := range skillgraph.Default().All() {
		lp := b.Build(sk.ID)
		require.NotNil(t, lp)
		assert.NotNil(t, lp.AlternativePaths)
		assert.Empty(t, lp.AlternativePaths, "goal %s", sk.ID)
	}
}

func TestBuild_FastTrack(t *testing.T) {
	b := builder(skillgraph.Default(), learner.Record{ID: "u", CompletedScenarios: scenarios(13)})
	lp := b.Build("feedback-delivery")
	require.NotNil(t, lp)
	require.Len(t, lp.AlternativePaths, 1)

	alt := lp.AlternativePaths[0]
	assert.Equal(t, FastTrackName, alt.Name)
	assert.NotEmpty(t, alt.Description)
	want := []numbered{
		{"clear-expression", 1},
		{"self-awareness", 2},
		{"active-listening", 4},
		{"empathy", 6},
		{"feedback-delivery", 11},
	}
	assert.Equal(t, want, orders(alt.Steps))
	assert.Equal(t, "2 months", alt.TotalEstimatedTime)
	assert.Len(t, lp.Steps, 6, "standard path is unchanged")
}

func TestBuild_DeepMastery(t *testing.T) {
	lp := builder(skillgraph.Default(), learner.Record{ID: "u"}).Build("feedback-delivery")
	require.NotNil(t, lp)
	require.Len(t, lp.AlternativePaths, 1)

	alt := lp.AlternativePaths[0]
	assert.Equal(t, DeepMasteryName, alt.Name)
	require.Len(t, alt.Steps, 8)
	assert.Equal(t, orders(lp.Steps), orders(alt.Steps[:6]))

	extra := orders(alt.Steps[6:])
	assert.Equal(t, []numbered{{"difficult-conversations", 12}, {"data-storytelling", 13}}, extra)
	assert.Equal(t, "Broadens advanced Communication expertise", alt.Steps[6].Reasoning)
	assert.Equal(t, "1 month", alt.TotalEstimatedTime)
}

func TestBuild_DeepMasteryExcludesGoalAndPathSkills(t *testing.T) {
	lp := builder(skillgraph.Default(), learner.Record{ID: "u"}).Build("influence")
	require.NotNil(t, lp)
	require.Len(t, lp.AlternativePaths, 1)

	seen := map[string]bool{}
	for _, s := range lp.AlternativePaths[0].Steps {
		if seen[s.SkillID] {
			t.Errorf("duplicate step %q in deep mastery path", s.SkillID)
		}
		seen[s.SkillID] = true
	}
	// strategic-thinking and coaching are the other advanced leadership skills.
	assert.True(t, seen["strategic-thinking"])
	assert.True(t, seen["coaching"])
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		steps int
		want  string
	}{
		{0, "0 weeks"},
		{1, "2 weeks"},
		{2, "3 weeks"},
		{3, "2 months"},
		{7, "3 months"},
		{8, "1 month"}, // singular unit, never "1 months"
		{9, "2 months"},
		{17, "3 months"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.steps); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.steps, got, tt.want)
		}
	}
}
