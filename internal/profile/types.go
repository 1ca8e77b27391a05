// Package profile derives a learner's per-skill state snapshot from the
// skill catalog and a learner record.
package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Level is a learner's maturity on one skill.
type Level string

const (
	LevelUnknown    Level = "unknown"
	LevelDeveloping Level = "developing"
	LevelCompetent  Level = "competent"
	LevelMastered   Level = "mastered"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognised input.
var ErrUnknownLevel = errors.New("unknown skill level")

// ParseLevel converts user input to a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelUnknown, LevelDeveloping, LevelCompetent, LevelMastered:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q (want unknown, developing, competent or mastered)", ErrUnknownLevel, s)
}

// LearningStyle is the inferred preferred way of studying.
type LearningStyle string

const (
	StyleVisual  LearningStyle = "visual"
	StyleHandsOn LearningStyle = "hands-on"
	StyleReading LearningStyle = "reading"
	StyleMixed   LearningStyle = "mixed"
)

// Pace is the inferred learning pace.
type Pace string

const (
	PaceFast     Pace = "fast"
	PaceModerate Pace = "moderate"
	PaceThorough Pace = "thorough"
)

// SkillState is a learner's current snapshot for one skill.
type SkillState struct {
	SkillID       string     `json:"skillId"`
	Level         Level      `json:"level"`
	Confidence    int        `json:"confidence"`
	LastPracticed *time.Time `json:"lastPracticed,omitempty"`
	PracticeCount int        `json:"practiceCount"`
	NeedsRefresh  bool       `json:"needsRefresh"`
}

// LearnerProfile is the per-request view of one learner.
type LearnerProfile struct {
	UserID                 string                `json:"userId"`
	Archetype              string                `json:"archetype"`
	Skills                 map[string]SkillState `json:"skills"`
	GoalSkills             []string              `json:"goalSkills"`
	PreferredLearningStyle LearningStyle         `json:"preferredLearningStyle"`
	LearningPace           Pace                  `json:"learningPace"`
	CompletedScenarios     []string              `json:"completedScenarios"`
	StrengthAreas          []string              `json:"strengthAreas"`
	ChallengeAreas         []string              `json:"challengeAreas"`
}

// State returns the learner's state for a skill. Skills the profile does
// not know about report LevelUnknown.
func (p *LearnerProfile) State(skillID string) SkillState {
	if st, ok := p.Skills[skillID]; ok {
		return st
	}
	return SkillState{SkillID: skillID, Level: LevelUnknown}
}

// Clone returns a deep copy of the profile.
func (p LearnerProfile) Clone() LearnerProfile {
	out := p
	out.Skills = make(map[string]SkillState, len(p.Skills))
	for id, st := range p.Skills {
		if st.LastPracticed != nil {
			t := *st.LastPracticed
			st.LastPracticed = &t
		}
		out.Skills[id] = st
	}
	out.GoalSkills = slices.Clone(p.GoalSkills)
	out.CompletedScenarios = slices.Clone(p.CompletedScenarios)
	out.StrengthAreas = slices.Clone(p.StrengthAreas)
	out.ChallengeAreas = slices.Clone(p.ChallengeAreas)
	return out
}

// SkillIDs returns the ids of all tracked skills, sorted.
func (p *LearnerProfile) SkillIDs() []string {
	return slices.Sorted(maps.Keys(p.Skills))
}

// UpdateSkillProgress records explicit progress on a skill: it sets the
// level and confidence, bumps the practice count, stamps lastPracticed and
// clears needsRefresh. It reports false and does nothing when the skill is
// not tracked by the profile.
func (p *LearnerProfile) UpdateSkillProgress(skillID string, level Level, confidence int, now time.Time) bool {
	st, ok := p.Skills[skillID]
	if !ok {
		return false
	}
	st.Level = level
	st.Confidence = clampConfidence(confidence)
	st.PracticeCount++
	t := now
	st.LastPracticed = &t
	st.NeedsRefresh = false
	p.Skills[skillID] = st
	return true
}

// RecomputeRefresh re-derives needsRefresh for every skill from its
// lastPracticed as seen at now.
func (p *LearnerProfile) RecomputeRefresh(now time.Time) {
	for id, st := range p.Skills {
		st.NeedsRefresh = NeedsRefresh(st.Level, st.LastPracticed, now)
		p.Skills[id] = st
	}
}

func clampConfidence(c int) int {
	return min(max(c, 0), 100)
}
