// Package pathway builds ordered, prerequisite-resolved learning pathways
// toward a goal skill.
package pathway

import (
	"fmt"
	"math"

	"github.com/abhisek/pathwise/internal/actions"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

// WeeksPerStep is the planning estimate for one pathway step.
const WeeksPerStep = 1.5

const (
	FastTrackName   = "Fast Track"
	DeepMasteryName = "Deep Mastery"
)

// Step is one skill on a pathway.
type Step struct {
	SkillID       string           `json:"skillId"`
	SkillName     string           `json:"skillName"`
	Order         int              `json:"order"`
	Reasoning     string           `json:"reasoning"`
	EstimatedTime string           `json:"estimatedTime"`
	Prerequisites []string         `json:"prerequisites"`
	Actions       []actions.Action `json:"actions"`
}

// AlternativePath is a pace-specific variant of the standard pathway.
type AlternativePath struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Steps              []Step `json:"steps"`
	TotalEstimatedTime string `json:"totalEstimatedTime"`
}

// LearningPathway is the plan toward one goal skill.
type LearningPathway struct {
	GoalSkill          string            `json:"goalSkill"`
	GoalSkillID        string            `json:"goalSkillId"`
	TotalEstimatedTime string            `json:"totalEstimatedTime"`
	Steps              []Step            `json:"steps"`
	AlternativePaths   []AlternativePath `json:"alternativePaths"`
}

// Builder plans pathways for one profile. It only reads the catalog and
// profile, so a Builder may be shared by concurrent readers.
type Builder struct {
	catalog *skillgraph.Catalog
	profile *profile.LearnerProfile
}

// NewBuilder returns a builder over the given catalog and profile.
func NewBuilder(cat *skillgraph.Catalog, p *profile.LearnerProfile) *Builder {
	return &Builder{catalog: cat, profile: p}
}

// Build returns the pathway toward goalID, or nil when the goal is not in
// the catalog.
func (b *Builder) Build(goalID string) *LearningPathway {
	goal, ok := b.catalog.Lookup(goalID)
	if !ok {
		return nil
	}

	w := &walk{
		builder: b,
		goalID:  goal.ID,
		visited: make(map[string]bool),
	}
	w.expand(goal.ID, "")

	steps := w.steps
	if steps == nil {
		steps = []Step{}
	}

	lp := &LearningPathway{
		GoalSkill:          goal.Name,
		GoalSkillID:        goal.ID,
		TotalEstimatedTime: FormatDuration(len(steps)),
		Steps:              steps,
		AlternativePaths:   []AlternativePath{},
	}

	switch b.profile.LearningPace {
	case profile.PaceFast:
		lp.AlternativePaths = append(lp.AlternativePaths, b.fastTrack(goal, steps))
	case profile.PaceThorough:
		lp.AlternativePaths = append(lp.AlternativePaths, b.deepMastery(goal, steps))
	}
	return lp
}

// walk is the state of one depth-first prerequisite expansion. The visited
// set guarantees each skill is expanded at most once, which also bounds the
// walk on cyclic input.
type walk struct {
	builder *Builder
	goalID  string
	visited map[string]bool
	steps   []Step
	emitted int
}

// expand emits steps for id's unvisited prerequisites, then for id itself,
// and returns every step emitted under id. dependent is the name of the
// skill that required id, empty for the goal.
func (w *walk) expand(id, dependent string) []Step {
	if w.visited[id] {
		return nil
	}
	w.visited[id] = true

	sk, ok := w.builder.catalog.Lookup(id)
	if !ok {
		return nil
	}

	var collected []Step
	for _, pid := range w.builder.catalog.PrerequisiteIDs(id) {
		collected = append(collected, w.expand(pid, sk.Name)...)
	}

	st := w.builder.profile.State(id)
	if st.Level == profile.LevelMastered {
		return collected
	}

	step := Step{
		SkillID:       sk.ID,
		SkillName:     sk.Name,
		Order:         w.emitted + len(collected) + 1,
		Reasoning:     stepReasoning(sk, dependent, id == w.goalID, st.Level),
		EstimatedTime: sk.EstimatedTime,
		Prerequisites: append([]string{}, sk.Prerequisites...),
		Actions:       actions.Synthesize(sk, actions.IntentLearn),
	}
	w.steps = append(w.steps, step)
	w.emitted++
	return append(collected, step)
}

func stepReasoning(sk skillgraph.Skill, dependent string, isGoal bool, level profile.Level) string {
	var r string
	if isGoal {
		r = "Goal skill: " + sk.Name
	} else {
		r = "Prerequisite for " + dependent
	}
	if level != profile.LevelUnknown {
		r += fmt.Sprintf(" (currently %s)", level)
	}
	return r
}

// fastTrack keeps only foundational steps and the goal itself.
func (b *Builder) fastTrack(goal skillgraph.Skill, steps []Step) AlternativePath {
	kept := []Step{}
	for _, s := range steps {
		sk, _ := b.catalog.Lookup(s.SkillID)
		if s.SkillID == goal.ID || sk.Level == skillgraph.LevelFoundational {
			kept = append(kept, s)
		}
	}
	return AlternativePath{
		Name:               FastTrackName,
		Description:        "Cover the foundations, then go straight for " + goal.Name,
		Steps:              kept,
		TotalEstimatedTime: FormatDuration(len(kept)),
	}
}

// deepMastery appends the other advanced skills of the goal's category
// after the standard steps.
func (b *Builder) deepMastery(goal skillgraph.Skill, steps []Step) AlternativePath {
	out := append([]Step{}, steps...)

	onPath := make(map[string]bool, len(steps))
	last := 0
	for _, s := range steps {
		onPath[s.SkillID] = true
		last = max(last, s.Order)
	}

	category := skillgraph.CategoryDisplayName(goal.Category)
	for _, sk := range b.catalog.All() {
		if sk.Category != goal.Category || sk.Level != skillgraph.LevelAdvanced {
			continue
		}
		if sk.ID == goal.ID || onPath[sk.ID] {
			continue
		}
		last++
		out = append(out, Step{
			SkillID:       sk.ID,
			SkillName:     sk.Name,
			Order:         last,
			Reasoning:     "Broadens advanced " + category + " expertise",
			EstimatedTime: sk.EstimatedTime,
			Prerequisites: append([]string{}, sk.Prerequisites...),
			Actions:       actions.Synthesize(sk, actions.IntentLearn),
		})
	}

	return AlternativePath{
		Name:               DeepMasteryName,
		Description:        "Master " + goal.Name + ", then round out advanced " + category + " skills",
		Steps:              out,
		TotalEstimatedTime: FormatDuration(len(out)),
	}
}

// FormatDuration renders the planning estimate for a number of steps at
// WeeksPerStep each: whole weeks under 4 weeks, 4-week months under 12
// weeks, and 12-week blocks beyond.
func FormatDuration(steps int) string {
	weeks := float64(steps) * WeeksPerStep
	switch {
	case weeks < 4:
		return plural(int(math.Ceil(weeks)), "week")
	case weeks < 12:
		return plural(int(math.Ceil(weeks/4)), "month")
	default:
		return plural(int(math.Ceil(weeks/12)), "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
