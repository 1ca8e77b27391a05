// Package recommend ranks the skills a learner should study next.
//
// Four independent strategies each produce candidates at a fixed base
// priority; the merged list is sorted by priority, stable on ties, so
// candidates keep strategy order (refresh, prerequisite, progression,
// archetype) within a priority. The same skill may appear more than once
// when several strategies pick it.
package recommend

import (
	"fmt"
	"sort"

	"github.com/abhisek/pathwise/internal/actions"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

// Pathway tags where a recommendation came from.
type Pathway string

const (
	PathwayDirect        Pathway = "direct"
	PathwayPrerequisite  Pathway = "prerequisite"
	PathwayReinforcement Pathway = "reinforcement"
)

// Base priorities per strategy.
const (
	PriorityRefresh      = 90
	PriorityPrerequisite = 85
	PriorityProgression  = 75
	PriorityArchetype    = 70
)

// ArchetypeFocus lists the skills each archetype is nudged toward. It is
// deliberately distinct from profile.ArchetypeGoals.
var ArchetypeFocus = map[string][]string{
	"analyst":    {"clear-expression", "feedback-delivery"},
	"driver":     {"emotional-regulation", "coaching"},
	"expressive": {"self-awareness", "data-storytelling"},
	"amiable":    {"clear-expression", "negotiation"},
	"strategist": {"delegation", "difficult-conversations"},
	"connector":  {"self-awareness", "influence"},
}

// Recommendation is one ranked suggestion.
type Recommendation struct {
	SkillID       string           `json:"skillId"`
	SkillName     string           `json:"skillName"`
	Priority      int              `json:"priority"`
	Reasoning     []string         `json:"reasoning"`
	EstimatedTime string           `json:"estimatedTime"`
	Pathway       Pathway          `json:"pathway"`
	NextActions   []actions.Action `json:"nextActions"`
}

// Generator produces recommendations for one profile. It only reads the
// catalog and profile.
type Generator struct {
	catalog *skillgraph.Catalog
	profile *profile.LearnerProfile
}

// NewGenerator returns a generator over the given catalog and profile.
func NewGenerator(cat *skillgraph.Catalog, p *profile.LearnerProfile) *Generator {
	return &Generator{catalog: cat, profile: p}
}

// Next returns at most limit recommendations ordered by priority,
// highest first. It never returns nil.
func (g *Generator) Next(limit int) []Recommendation {
	if limit <= 0 {
		return []Recommendation{}
	}

	var all []Recommendation
	all = append(all, g.refresh()...)
	all = append(all, g.prerequisites()...)
	all = append(all, g.progression()...)
	all = append(all, g.archetype()...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Priority > all[j].Priority
	})

	if len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []Recommendation{}
	}
	return all
}

// refresh recommends every practiced skill whose recency has decayed.
func (g *Generator) refresh() []Recommendation {
	var out []Recommendation
	for _, sk := range g.catalog.All() {
		st := g.profile.State(sk.ID)
		if !st.NeedsRefresh || st.Level == profile.LevelUnknown {
			continue
		}
		reasons := []string{
			fmt.Sprintf("Not practiced in over %d days", profile.RefreshThresholds[st.Level]),
			fmt.Sprintf("Keep your %s level (%d%% confidence) from slipping", st.Level, st.Confidence),
		}
		out = append(out, newRecommendation(sk, PriorityRefresh, PathwayReinforcement, actions.IntentRefresh, reasons))
	}
	return out
}

// prerequisites recommends direct prerequisites of goal skills that the
// learner has not yet reached competence on.
func (g *Generator) prerequisites() []Recommendation {
	var out []Recommendation
	for _, goalID := range g.profile.GoalSkills {
		goal, ok := g.catalog.Lookup(goalID)
		if !ok {
			continue
		}
		for _, pre := range g.catalog.Prerequisites(goal.ID) {
			st := g.profile.State(pre.ID)
			if st.Level != profile.LevelUnknown && st.Level != profile.LevelDeveloping {
				continue
			}
			reasons := []string{
				fmt.Sprintf("Prerequisite for your goal skill %s", goal.Name),
				fmt.Sprintf("Currently %s", st.Level),
			}
			out = append(out, newRecommendation(pre, PriorityPrerequisite, PathwayPrerequisite, actions.IntentLearn, reasons))
		}
	}
	return out
}

// progression recommends untouched skills unlocked by skills the learner
// is competent in.
func (g *Generator) progression() []Recommendation {
	var out []Recommendation
	for _, sk := range g.catalog.All() {
		if g.profile.State(sk.ID).Level != profile.LevelCompetent {
			continue
		}
		for _, next := range g.catalog.Dependents(sk.ID) {
			if g.profile.State(next.ID).Level != profile.LevelUnknown {
				continue
			}
			reasons := []string{
				fmt.Sprintf("Builds on %s, where you are already competent", sk.Name),
			}
			out = append(out, newRecommendation(next, PriorityProgression, PathwayDirect, actions.IntentLearn, reasons))
		}
	}
	return out
}

// archetype recommends the archetype's focus skills that are not mastered.
func (g *Generator) archetype() []Recommendation {
	var out []Recommendation
	for _, id := range ArchetypeFocus[g.profile.Archetype] {
		sk, ok := g.catalog.Lookup(id)
		if !ok {
			continue
		}
		if g.profile.State(id).Level == profile.LevelMastered {
			continue
		}
		reasons := []string{
			fmt.Sprintf("A high-leverage skill for the %s work style", g.profile.Archetype),
		}
		out = append(out, newRecommendation(sk, PriorityArchetype, PathwayDirect, actions.IntentLearn, reasons))
	}
	return out
}

func newRecommendation(sk skillgraph.Skill, priority int, pw Pathway, intent actions.Intent, reasons []string) Recommendation {
	return Recommendation{
		SkillID:       sk.ID,
		SkillName:     sk.Name,
		Priority:      priority,
		Reasoning:     reasons,
		EstimatedTime: sk.EstimatedTime,
		Pathway:       pw,
		NextActions:   actions.Synthesize(sk, intent),
	}
}
