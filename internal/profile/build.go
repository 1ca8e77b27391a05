package profile

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/pathwise/internal/learner"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

// Build derives a learner profile from the catalog and a learner record.
// It is deterministic for a given now and never fails: incomplete growth
// areas are ignored and unknown archetypes fall back to DefaultGoals.
func Build(cat *skillgraph.Catalog, rec learner.Record, now time.Time) LearnerProfile {
	completed := rec.CompletedSet()
	areas := validAreas(rec.GrowthAreas)

	p := LearnerProfile{
		UserID:             rec.ID,
		Archetype:          archetypeOrUnknown(rec.Archetype),
		Skills:             make(map[string]SkillState, cat.Len()),
		CompletedScenarios: slices.Clone(rec.CompletedScenarios),
	}
	if p.CompletedScenarios == nil {
		p.CompletedScenarios = []string{}
	}

	for _, sk := range cat.All() {
		p.Skills[sk.ID] = initialState(sk, areas, completed, now)
	}

	p.GoalSkills = InferGoals(rec.Archetype)
	p.PreferredLearningStyle = InferStyle(len(rec.CompletedScenarios))
	p.LearningPace = InferPace(len(rec.CompletedScenarios))
	p.StrengthAreas = strengthAreas(areas)
	p.ChallengeAreas = challengeAreas(areas)
	return p
}

func initialState(sk skillgraph.Skill, areas []learner.GrowthArea, completed map[string]bool, now time.Time) SkillState {
	st := SkillState{SkillID: sk.ID, Level: LevelUnknown}

	for _, sc := range sk.RelatedScenarios {
		if completed[sc] {
			st.PracticeCount++
		}
	}

	if ga, ok := matchArea(sk.Name, areas); ok {
		score := ga.ClampedScore()
		if lvl, ok := LevelForScore(score); ok {
			st.Level = lvl
			st.Confidence = clampConfidence(int(math.Round(score * 10)))
			t := *ga.LastUpdated
			st.LastPracticed = &t
			st.NeedsRefresh = NeedsRefresh(st.Level, st.LastPracticed, now)
			return st
		}
	}

	if st.PracticeCount > 0 {
		st.Level = LevelDeveloping
		st.Confidence = min(st.PracticeCount*ScenarioConfidenceStep, ScenarioConfidenceCap)
	}
	return st
}

// matchArea returns the first growth area whose name contains, or is
// contained in, the skill name, ignoring case.
func matchArea(skillName string, areas []learner.GrowthArea) (learner.GrowthArea, bool) {
	name := strings.ToLower(skillName)
	for _, ga := range areas {
		gn := strings.ToLower(strings.TrimSpace(ga.Name))
		if strings.Contains(name, gn) || strings.Contains(gn, name) {
			return ga, true
		}
	}
	return learner.GrowthArea{}, false
}

// LevelForScore maps a 0-10 growth-area score to a level using ScoreLevels.
// It reports false when the score is below every row.
func LevelForScore(score float64) (Level, bool) {
	for _, row := range ScoreLevels {
		if score >= row.MinScore {
			return row.Level, true
		}
	}
	return LevelUnknown, false
}

// NeedsRefresh reports whether a skill at level, last practiced at
// lastPracticed, has gone unpractised longer than its refresh threshold.
// Unknown levels and skills never practised never need a refresh.
func NeedsRefresh(level Level, lastPracticed *time.Time, now time.Time) bool {
	if level == LevelUnknown || lastPracticed == nil {
		return false
	}
	threshold, ok := RefreshThresholds[level]
	if !ok {
		return false
	}
	days := now.Sub(*lastPracticed).Hours() / 24
	return days > float64(threshold)
}

// InferGoals returns the goal skill ids for an archetype.
func InferGoals(archetype string) []string {
	if goals, ok := ArchetypeGoals[normalizeArchetype(archetype)]; ok {
		return slices.Clone(goals)
	}
	return slices.Clone(DefaultGoals)
}

// InferStyle guesses a learning style from the completed-scenario count.
func InferStyle(completed int) LearningStyle {
	if completed > HandsOnScenarioCount {
		return StyleHandsOn
	}
	return StyleMixed
}

// InferPace classifies the weekly completion rate over PaceWindowWeeks.
func InferPace(completed int) Pace {
	weekly := float64(completed) / PaceWindowWeeks
	for _, row := range PaceThresholds {
		if weekly > row.AboveWeekly {
			return row.Pace
		}
	}
	return PaceThorough
}

func strengthAreas(areas []learner.GrowthArea) []string {
	var picked []learner.GrowthArea
	for _, ga := range areas {
		if ga.ClampedScore() >= StrengthMinScore {
			picked = append(picked, ga)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].ClampedScore() > picked[j].ClampedScore()
	})
	return areaIDs(picked)
}

func challengeAreas(areas []learner.GrowthArea) []string {
	var picked []learner.GrowthArea
	for _, ga := range areas {
		if ga.ClampedScore() < ChallengeMaxScore {
			picked = append(picked, ga)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].ClampedScore() < picked[j].ClampedScore()
	})
	return areaIDs(picked)
}

func areaIDs(areas []learner.GrowthArea) []string {
	out := make([]string, 0, MaxFocusAreas)
	for _, ga := range areas {
		if len(out) == MaxFocusAreas {
			break
		}
		id := ga.ID
		if id == "" {
			id = ga.Name
		}
		out = append(out, id)
	}
	return out
}

func validAreas(areas []learner.GrowthArea) []learner.GrowthArea {
	out := make([]learner.GrowthArea, 0, len(areas))
	for _, ga := range areas {
		if ga.Valid() {
			out = append(out, ga)
		}
	}
	return out
}

func normalizeArchetype(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

func archetypeOrUnknown(a string) string {
	if n := normalizeArchetype(a); n != "" {
		return n
	}
	return UnknownArchetype
}
