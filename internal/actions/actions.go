// Package actions turns a skill's learning resources into concrete next
// steps.
package actions

import "github.com/abhisek/pathwise/internal/skillgraph"

// Type is the kind of learning action.
type Type string

const (
	TypeScenario Type = "scenario"
	TypeReading  Type = "reading"
	TypeVideo    Type = "video"
	TypePractice Type = "practice"
)

// Intent says why the learner is being sent to a skill.
type Intent string

const (
	IntentLearn   Intent = "learn"
	IntentRefresh Intent = "refresh"
)

// ScenarioTime is the estimate attached to scenario actions, which carry
// no duration of their own.
const ScenarioTime = "20 minutes"

// MaxActions is the most actions Synthesize returns.
const MaxActions = 4

// Action is one recommended learning activity.
type Action struct {
	Type          Type             `json:"type"`
	Reference     string           `json:"reference"`
	Title         string           `json:"title"`
	EstimatedTime string           `json:"estimatedTime"`
	Difficulty    skillgraph.Level `json:"difficulty"`
	Intent        Intent           `json:"intent"`
}

// Synthesize emits at most one action per resource kind the skill has: a
// scenario, a reading, a video and a practice exercise, in that order.
// Missing kinds are omitted.
func Synthesize(s skillgraph.Skill, intent Intent) []Action {
	out := make([]Action, 0, MaxActions)

	if len(s.RelatedScenarios) > 0 {
		out = append(out, Action{
			Type:          TypeScenario,
			Reference:     s.RelatedScenarios[0],
			Title:         scenarioTitle(s, intent),
			EstimatedTime: ScenarioTime,
			Difficulty:    s.Level,
			Intent:        intent,
		})
	}

	kinds := []struct {
		typ Type
		res []skillgraph.Resource
	}{
		{TypeReading, s.Resources.Articles},
		{TypeVideo, s.Resources.Videos},
		{TypePractice, s.Resources.Exercises},
	}
	for _, k := range kinds {
		if len(k.res) == 0 {
			continue
		}
		r := k.res[0]
		ref := r.URL
		if ref == "" {
			ref = r.Title
		}
		out = append(out, Action{
			Type:          k.typ,
			Reference:     ref,
			Title:         r.Title,
			EstimatedTime: r.Time,
			Difficulty:    s.Level,
			Intent:        intent,
		})
	}
	return out
}

func scenarioTitle(s skillgraph.Skill, intent Intent) string {
	if intent == IntentRefresh {
		return "Revisit a " + s.Name + " scenario"
	}
	return "Practice " + s.Name + " in a scenario"
}
