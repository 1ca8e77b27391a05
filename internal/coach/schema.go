package coach

import "github.com/abhisek/pathwise/internal/llm"

// BriefingSchema is the structured output requested for every briefing.
var BriefingSchema = &llm.Schema{
	Name:        "coaching-briefing",
	Description: "A short coaching briefing that explains a learning plan to the learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One motivating sentence naming the main focus (6-14 words)",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "2-4 sentences explaining why the plan is ordered this way",
			},
			"first_step_tip": map[string]any{
				"type":        "string",
				"description": "One concrete thing to do in the next practice session",
			},
		},
		"required":             []any{"headline", "summary", "first_step_tip"},
		"additionalProperties": false,
	},
}
