package render

import (
	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary   = lipgloss.Color("#8B5CF6") // violet
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E") // green
	Warning   = lipgloss.Color("#EAB308") // amber
	Error     = lipgloss.Color("#F43F5E") // rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	bodyStyle = lipgloss.NewStyle().
			Foreground(Text)

	dimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	barFilledStyle = lipgloss.NewStyle().Foreground(Secondary)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(Border)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)

// levelStyles colour skill states from unknown to mastered.
var levelStyles = map[string]lipgloss.Style{
	"unknown":    dimStyle,
	"developing": lipgloss.NewStyle().Foreground(Warning),
	"competent":  lipgloss.NewStyle().Foreground(Secondary),
	"mastered":   lipgloss.NewStyle().Foreground(Success).Bold(true),
}

// pathwayStyles colour recommendation pathway tags.
var pathwayStyles = map[string]lipgloss.Style{
	"direct":        lipgloss.NewStyle().Foreground(Secondary),
	"prerequisite":  lipgloss.NewStyle().Foreground(Primary),
	"reinforcement": lipgloss.NewStyle().Foreground(Accent),
}
