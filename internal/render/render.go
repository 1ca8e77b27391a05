// Package render formats engine output for the terminal.
package render

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/coach"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/recommend"
	"github.com/abhisek/pathwise/internal/skillgraph"
)

// barWidth is the width of confidence bars in cells.
const barWidth = 20

// Renderer turns results into printable text. A plain Renderer emits no
// ANSI sequences and no box drawing.
type Renderer struct {
	plain bool
}

func New(plain bool) *Renderer {
	return &Renderer{plain: plain}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) card(body string) string {
	if r.plain {
		return body
	}
	return cardStyle.Render(strings.TrimRight(body, "\n"))
}

// Bar renders confidence (0-100) as a fixed-width bar.
func (r *Renderer) Bar(confidence int) string {
	confidence = min(max(confidence, 0), 100)
	filled := confidence * barWidth / 100
	if r.plain {
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// Recommendations renders a ranked list.
func (r *Renderer) Recommendations(recs []recommend.Recommendation) string {
	if len(recs) == 0 {
		return r.style(hintStyle, "No recommendations right now.") + "\n"
	}

	var b strings.Builder
	b.WriteString(r.style(titleStyle, "Next up") + "\n\n")
	for i, rec := range recs {
		tag := r.style(pathwayStyles[string(rec.Pathway)], "["+string(rec.Pathway)+"]")
		fmt.Fprintf(&b, "%d. %s %s %s\n", i+1,
			r.style(accentStyle, rec.SkillName), tag,
			r.style(dimStyle, fmt.Sprintf("priority %d · %s", rec.Priority, rec.EstimatedTime)))
		for _, reason := range rec.Reasoning {
			fmt.Fprintf(&b, "   - %s\n", r.style(bodyStyle, reason))
		}
		if len(rec.NextActions) > 0 {
			a := rec.NextActions[0]
			fmt.Fprintf(&b, "   %s %s (%s, %s)\n", r.style(hintStyle, "start with:"), a.Title, a.Type, a.EstimatedTime)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Pathway renders the standard steps followed by any alternatives.
func (r *Renderer) Pathway(lp *pathway.LearningPathway) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.style(titleStyle, "Pathway to "+lp.GoalSkill),
		r.style(dimStyle, "("+lp.TotalEstimatedTime+")"))

	if len(lp.Steps) == 0 {
		b.WriteString(r.style(hintStyle, "Already mastered; nothing left on this path.") + "\n")
	} else {
		b.WriteString(r.steps(lp.Steps))
	}

	for _, alt := range lp.AlternativePaths {
		var ab strings.Builder
		fmt.Fprintf(&ab, "%s %s\n", r.style(headingStyle, alt.Name), r.style(dimStyle, "("+alt.TotalEstimatedTime+")"))
		ab.WriteString(r.style(hintStyle, alt.Description) + "\n")
		ab.WriteString(r.steps(alt.Steps))
		b.WriteString("\n" + r.card(ab.String()) + "\n")
	}
	return b.String()
}

func (r *Renderer) steps(steps []pathway.Step) string {
	var b strings.Builder
	for _, s := range steps {
		fmt.Fprintf(&b, "%3d. %s %s\n", s.Order, r.style(accentStyle, s.SkillName), r.style(dimStyle, s.EstimatedTime))
		fmt.Fprintf(&b, "     %s\n", r.style(bodyStyle, s.Reasoning))
	}
	return b.String()
}

// Profile renders the learner summary and per-skill states grouped by
// category in catalog order.
func (r *Renderer) Profile(p profile.LearnerProfile, cat *skillgraph.Catalog) string {
	var b strings.Builder
	archetype := p.Archetype
	if archetype == "" {
		archetype = profile.UnknownArchetype
	}
	b.WriteString(r.style(titleStyle, "Learner "+p.UserID) + "\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		r.style(dimStyle, "archetype"), archetype,
		r.style(dimStyle, "style"), p.PreferredLearningStyle,
		r.style(dimStyle, "pace"), p.LearningPace)
	r.list(&b, "goals", goalNames(p.GoalSkills, cat))
	r.list(&b, "strengths", p.StrengthAreas)
	r.list(&b, "challenges", p.ChallengeAreas)

	for _, category := range cat.Categories() {
		b.WriteString("\n" + r.style(headingStyle, skillgraph.CategoryDisplayName(category)) + "\n")
		for _, sk := range cat.ByCategory(category) {
			st := p.State(sk.ID)
			level := r.style(levelStyles[string(st.Level)], fmt.Sprintf("%-10s", st.Level))
			line := fmt.Sprintf("  %-26s %s %s %3d%%", sk.Name, level, r.Bar(st.Confidence), st.Confidence)
			if st.NeedsRefresh {
				line += " " + r.style(errorStyle, "refresh")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func (r *Renderer) list(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s %s\n", r.style(dimStyle, label), strings.Join(items, ", "))
}

func goalNames(ids []string, cat *skillgraph.Catalog) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if sk, ok := cat.Lookup(id); ok {
			out = append(out, sk.Name)
			continue
		}
		out = append(out, id)
	}
	return out
}

// Catalog renders skills grouped by category.
func (r *Renderer) Catalog(cat *skillgraph.Catalog, category string) string {
	var b strings.Builder
	b.WriteString(r.style(titleStyle, "Skill catalog "+cat.Version()) + "\n")

	categories := cat.Categories()
	if category != "" {
		categories = []string{category}
	}
	for _, c := range categories {
		b.WriteString("\n" + r.style(headingStyle, skillgraph.CategoryDisplayName(c)) + "\n")
		for _, sk := range cat.ByCategory(c) {
			fmt.Fprintf(&b, "  %-26s %-13s %-10s %s\n", sk.ID, sk.Level, sk.EstimatedTime,
				r.style(dimStyle, strings.Join(sk.Prerequisites, ", ")))
		}
	}
	return b.String()
}

// Briefing renders a coach briefing.
func (r *Renderer) Briefing(br *coach.Briefing) string {
	var b strings.Builder
	b.WriteString(r.style(headingStyle, br.Headline) + "\n")
	b.WriteString(r.style(bodyStyle, br.Summary) + "\n")
	b.WriteString(r.style(hintStyle, "Tip: ") + br.FirstStepTip + "\n")
	return r.card(b.String()) + "\n"
}

// KeyValues renders aligned key/value rows sorted by key.
func (r *Renderer) KeyValues(title string, kv map[string]string) string {
	keys := make([]string, 0, len(kv))
	width := 0
	for k := range kv {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(r.style(titleStyle, title) + "\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s  %s\n", r.style(dimStyle, fmt.Sprintf("%-*s", width, k)), kv[k])
	}
	return b.String()
}

// Error renders a one-line failure message.
func (r *Renderer) Error(msg string) string {
	return r.style(errorStyle, "error: ") + msg + "\n"
}
