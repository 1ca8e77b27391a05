package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/actions"
	"github.com/abhisek/pathwise/internal/learner"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

var now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func area(name string, score float64, daysAgo int) learner.GrowthArea {
	ts := now.AddDate(0, 0, -daysAgo)
	return learner.GrowthArea{ID: name, Name: name, Score: &score, LastUpdated: &ts}
}

func generator(rec learner.Record) *Generator {
	p := profile.Build(skillgraph.Default(), rec, now)
	return NewGenerator(skillgraph.Default(), &p)
}

type pick struct {
	id       string
	priority int
	pathway  Pathway
}

func picks(recs []Recommendation) []pick {
	out := make([]pick, len(recs))
	for i, r := range recs {
		out[i] = pick{r.SkillID, r.Priority, r.Pathway}
	}
	return out
}

func TestNext_AnalystNoHistory(t *testing.T) {
	got := generator(learner.Record{ID: "u", Archetype: "analyst"}).Next(10)

	want := []pick{
		{"clear-expression", 85, PathwayPrerequisite}, // data-storytelling
		{"clear-expression", 85, PathwayPrerequisite}, // assertiveness
		{"self-awareness", 85, PathwayPrerequisite},   // assertiveness
		{"active-listening", 85, PathwayPrerequisite}, // empathy
		{"clear-expression", 70, PathwayDirect},
		{"feedback-delivery", 70, PathwayDirect},
	}
	assert.Equal(t, want, picks(got))
}

func TestNext_RefreshAndProgression(t *testing.T) {
	rec := learner.Record{ID: "u", GrowthAreas: []learner.GrowthArea{
		area("Empathy", 4, 20),
		area("Active Listening", 7, 2),
	}}
	got := generator(rec).Next(10)

	want := []pick{
		{"empathy", 90, PathwayReinforcement},
		{"negotiation", 75, PathwayDirect},
		{"coaching", 75, PathwayDirect},
	}
	require.Equal(t, want, picks(got))

	for _, a := range got[0].NextActions {
		assert.Equal(t, actions.IntentRefresh, a.Intent)
	}
	for _, a := range got[1].NextActions {
		assert.Equal(t, actions.IntentLearn, a.Intent)
	}
}

func TestNext_ArchetypeSkipsMastered(t *testing.T) {
	rec := learner.Record{ID: "u", Archetype: "analyst", GrowthAreas: []learner.GrowthArea{
		area("Clear Expression", 9, 1),
	}}
	got := generator(rec).Next(10)

	want := []pick{
		{"self-awareness", 85, PathwayPrerequisite},
		{"active-listening", 85, PathwayPrerequisite},
		{"feedback-delivery", 70, PathwayDirect},
	}
	assert.Equal(t, want, picks(got))
}

func TestNext_PrerequisiteSkipsCompetent(t *testing.T) {
	rec := learner.Record{ID: "u", Archetype: "driver", GrowthAreas: []learner.GrowthArea{
		area("Active Listening", 6, 1),
	}}
	for _, r := range generator(rec).Next(20) {
		if r.SkillID == "active-listening" && r.Pathway == PathwayPrerequisite {
			t.Errorf("competent prerequisite should not be recommended: %+v", r)
		}
	}
}

func TestNext_Limit(t *testing.T) {
	g := generator(learner.Record{ID: "u", Archetype: "analyst"})
	tests := []struct {
		limit int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 3},
		{100, 6},
	}
	for _, tt := range tests {
		got := g.Next(tt.limit)
		if got == nil {
			t.Errorf("Next(%d) returned nil", tt.limit)
		}
		if len(got) != tt.want {
			t.Errorf("Next(%d) returned %d items, want %d", tt.limit, len(got), tt.want)
		}
	}
}

func TestNext_PriorityNonIncreasing(t *testing.T) {
	rec := learner.Record{
		ID:                 "u",
		Archetype:          "strategist",
		CompletedScenarios: []string{"scn-handoff", "scn-one-on-one", "scn-peer-feedback"},
		GrowthAreas: []learner.GrowthArea{
			area("Empathy", 4, 40),
			area("Assertiveness", 7, 45),
			area("Conflict Resolution", 6, 3),
		},
	}
	got := generator(rec).Next(50)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		if got[i].Priority > got[i-1].Priority {
			t.Errorf("priority increased at %d: %d > %d", i, got[i].Priority, got[i-1].Priority)
		}
	}
	for _, r := range got {
		assert.NotEmpty(t, r.Reasoning, "recommendation %s has no reasoning", r.SkillID)
		assert.NotEmpty(t, r.EstimatedTime)
	}
}

func TestNext_UnknownGoalAndFocusIdsSkipped(t *testing.T) {
	cat := skillgraph.New("v1.0.0", []skillgraph.Skill{
		{ID: "only", Name: "Only", Level: skillgraph.LevelFoundational},
	})
	p := profile.Build(cat, learner.Record{ID: "u", Archetype: "analyst"}, now)
	got := NewGenerator(cat, &p).Next(5)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestArchetypeFocus_DistinctFromGoals(t *testing.T) {
	for arch, focus := range ArchetypeFocus {
		goals := profile.ArchetypeGoals[arch]
		for _, f := range focus {
			for _, g := range goals {
				if f == g {
					t.Errorf("archetype %s: focus skill %s is also a goal skill", arch, f)
				}
			}
		}
	}
}
