package skillgraph

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level represents a skill's maturity tier in the catalog.
type Level string

const (
	LevelFoundational Level = "foundational"
	LevelBridge       Level = "bridge"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns all levels in ascending order.
func AllLevels() []Level {
	return []Level{
		LevelFoundational,
		LevelBridge,
		LevelAdvanced,
	}
}

// Valid reports whether l is one of the recognized levels.
func (l Level) Valid() bool {
	switch l {
	case LevelFoundational, LevelBridge, LevelAdvanced:
		return true
	default:
		return false
	}
}

// rank orders levels for sorting; unknown levels sort last.
func (l Level) rank() int {
	switch l {
	case LevelFoundational:
		return 0
	case LevelBridge:
		return 1
	case LevelAdvanced:
		return 2
	default:
		return 3
	}
}

var titleCaser = cases.Title(language.English)

// CategoryDisplayName returns a human-readable name for a category slug,
// e.g. "emotional-intelligence" -> "Emotional Intelligence".
func CategoryDisplayName(category string) string {
	if category == "" {
		return "Uncategorized"
	}
	return titleCaser.String(strings.ReplaceAll(category, "-", " "))
}

// Resource is a single learning resource attached to a skill.
type Resource struct {
	Title string `yaml:"title" json:"title"`
	Time  string `yaml:"time" json:"time"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Resources groups a skill's optional learning resources by kind.
type Resources struct {
	Articles  []Resource `yaml:"articles,omitempty" json:"articles,omitempty"`
	Videos    []Resource `yaml:"videos,omitempty" json:"videos,omitempty"`
	Exercises []Resource `yaml:"exercises,omitempty" json:"exercises,omitempty"`
}

// Skill is a single competency definition in the catalog.
//
// Prerequisites reference other skills by Name, not ID. The catalog resolves
// them to IDs once when it is built.
type Skill struct {
	ID               string    `yaml:"id" json:"id"`
	Name             string    `yaml:"name" json:"name"`
	Category         string    `yaml:"category" json:"category"`
	Level            Level     `yaml:"level" json:"level"`
	EstimatedTime    string    `yaml:"estimated_time" json:"estimatedTime"`
	Prerequisites    []string  `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	RelatedScenarios []string  `yaml:"related_scenarios,omitempty" json:"relatedScenarios,omitempty"`
	Resources        Resources `yaml:"resources,omitempty" json:"resources,omitempty"`
}
