package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/recommend"
)

const systemPrompt = `You are a warm, practical workplace communication coach. You explain a learning plan that has already been decided. Never add, remove or reorder skills; only explain the plan you are given. Use plain language and address the learner as "you".`

func writeLearner(b *strings.Builder, p profile.LearnerProfile) {
	archetype := p.Archetype
	if archetype == "" {
		archetype = profile.UnknownArchetype
	}
	fmt.Fprintf(b, "Learner archetype: %s\n", archetype)
	fmt.Fprintf(b, "Learning style: %s, pace: %s\n", p.PreferredLearningStyle, p.LearningPace)
	if len(p.StrengthAreas) > 0 {
		fmt.Fprintf(b, "Strengths: %s\n", strings.Join(p.StrengthAreas, ", "))
	}
	if len(p.ChallengeAreas) > 0 {
		fmt.Fprintf(b, "Challenges: %s\n", strings.Join(p.ChallengeAreas, ", "))
	}
}

func buildPathwayMessage(p profile.LearnerProfile, lp *pathway.LearningPathway) string {
	var b strings.Builder
	writeLearner(&b, p)

	fmt.Fprintf(&b, "\nGoal skill: %s (estimated %s)\n", lp.GoalSkill, lp.TotalEstimatedTime)
	b.WriteString("\nSteps in order:\n")
	for _, s := range lp.Steps {
		fmt.Fprintf(&b, "%d. %s (%s) - %s\n", s.Order, s.SkillName, s.EstimatedTime, s.Reasoning)
	}
	if len(lp.AlternativePaths) > 0 {
		b.WriteString("\nAlternatives offered:\n")
		for _, alt := range lp.AlternativePaths {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", alt.Name, alt.Description, alt.TotalEstimatedTime)
		}
	}

	b.WriteString(`
Instructions:
1. Write a headline naming the goal skill and the first step.
2. Explain in 2-4 sentences why the prerequisites come first, referring to the learner's pace and strengths where relevant.
3. Give one concrete tip for the first step that fits the learner's style.`)
	return b.String()
}

func buildRecommendationsMessage(p profile.LearnerProfile, recs []recommend.Recommendation) string {
	var b strings.Builder
	writeLearner(&b, p)

	b.WriteString("\nRecommended next skills, highest priority first:\n")
	for i, r := range recs {
		fmt.Fprintf(&b, "%d. %s [%s, priority %d] - %s\n",
			i+1, r.SkillName, r.Pathway, r.Priority, strings.Join(r.Reasoning, "; "))
	}

	b.WriteString(`
Instructions:
1. Write a headline naming the top recommendation.
2. Explain in 2-4 sentences how the recommendations fit together, mentioning any refresh items first.
3. Give one concrete tip for starting the top recommendation today.`)
	return b.String()
}
