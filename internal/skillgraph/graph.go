package skillgraph

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrSkillNotFound is returned when a skill ID is absent from the catalog.
var ErrSkillNotFound = errors.New("skill not found")

// Catalog holds the skill definitions with precomputed indices.
// Prerequisite names are resolved to IDs once, at construction time.
// A Catalog is immutable after New returns and is safe for concurrent readers.
type Catalog struct {
	version    string
	skills     []Skill
	byID       map[string]*Skill
	byName     map[string]*Skill
	prereqIDs  map[string][]string
	unresolved map[string][]string
	dependents map[string][]string
	byCategory map[string][]Skill
	topoOrder  []Skill
	topoIndex  map[string]int
}

// New builds a catalog from skill definitions. It never fails: duplicate
// IDs or names keep the first occurrence and unresolvable prerequisite names
// are recorded and skipped. Call Validate to surface those problems.
func New(version string, skills []Skill) *Catalog {
	c := &Catalog{
		version:    version,
		skills:     slices.Clone(skills),
		byID:       make(map[string]*Skill, len(skills)),
		byName:     make(map[string]*Skill, len(skills)),
		prereqIDs:  make(map[string][]string, len(skills)),
		unresolved: make(map[string][]string),
		dependents: make(map[string][]string),
		byCategory: make(map[string][]Skill),
		topoIndex:  make(map[string]int, len(skills)),
	}

	for i := range c.skills {
		s := &c.skills[i]
		if _, dup := c.byID[s.ID]; !dup {
			c.byID[s.ID] = s
		}
		if _, dup := c.byName[s.Name]; !dup {
			c.byName[s.Name] = s
		}
	}

	// Resolve prerequisite names to IDs and build reverse edges.
	for i := range c.skills {
		s := &c.skills[i]
		if c.byID[s.ID] != s {
			continue // shadowed duplicate
		}
		for _, name := range s.Prerequisites {
			p, ok := c.byName[name]
			if !ok {
				c.unresolved[s.ID] = append(c.unresolved[s.ID], name)
				continue
			}
			if slices.Contains(c.prereqIDs[s.ID], p.ID) {
				continue
			}
			c.prereqIDs[s.ID] = append(c.prereqIDs[s.ID], p.ID)
			c.dependents[p.ID] = append(c.dependents[p.ID], s.ID)
		}
	}

	c.topoOrder = c.topologicalOrder()
	for i, s := range c.topoOrder {
		c.topoIndex[s.ID] = i
	}

	// Group by category, sorted by level then topological position.
	for _, s := range c.uniqueSkills() {
		c.byCategory[s.Category] = append(c.byCategory[s.Category], s)
	}
	for _, group := range c.byCategory {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Level.rank() != group[j].Level.rank() {
				return group[i].Level.rank() < group[j].Level.rank()
			}
			return c.position(group[i].ID) < c.position(group[j].ID)
		})
	}

	return c
}

// topologicalOrder runs Kahn's algorithm over the resolved edges. Skills
// that sit on a cycle are omitted.
func (c *Catalog) topologicalOrder() []Skill {
	unique := c.uniqueSkills()
	inDegree := make(map[string]int, len(unique))
	for _, s := range unique {
		inDegree[s.ID] = len(c.prereqIDs[s.ID])
	}

	var queue []string
	for _, s := range unique {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
		}
	}
	sort.Strings(queue)

	var order []Skill
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, *c.byID[id])

		deps := slices.Clone(c.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
	return order
}

// uniqueSkills returns the skills reachable by ID, in catalog order.
func (c *Catalog) uniqueSkills() []Skill {
	out := make([]Skill, 0, len(c.byID))
	for i := range c.skills {
		if c.byID[c.skills[i].ID] == &c.skills[i] {
			out = append(out, c.skills[i])
		}
	}
	return out
}

// position returns the topological index of id, or a large value for
// skills that were excluded from the order by a cycle.
func (c *Catalog) position(id string) int {
	if i, ok := c.topoIndex[id]; ok {
		return i
	}
	return len(c.skills)
}

// Version returns the catalog's semantic version string.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of addressable skills.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Lookup returns the skill with the given ID.
func (c *Catalog) Lookup(id string) (Skill, bool) {
	s, ok := c.byID[id]
	if !ok {
		return Skill{}, false
	}
	return *s, true
}

// GetSkill returns a skill by ID, or ErrSkillNotFound.
func (c *Catalog) GetSkill(id string) (Skill, error) {
	s, ok := c.Lookup(id)
	if !ok {
		return Skill{}, fmt.Errorf("%w: %q", ErrSkillNotFound, id)
	}
	return s, nil
}

// ByName returns the skill with the given display name.
func (c *Catalog) ByName(name string) (Skill, bool) {
	s, ok := c.byName[name]
	if !ok {
		return Skill{}, false
	}
	return *s, true
}

// All returns every addressable skill in catalog order.
func (c *Catalog) All() []Skill {
	return c.uniqueSkills()
}

// PrerequisiteIDs returns the resolved prerequisite IDs of a skill, in the
// order its prerequisite names were declared.
func (c *Catalog) PrerequisiteIDs(id string) []string {
	return slices.Clone(c.prereqIDs[id])
}

// Prerequisites returns the direct prerequisite skills for a given skill ID.
func (c *Catalog) Prerequisites(id string) []Skill {
	ids := c.prereqIDs[id]
	result := make([]Skill, 0, len(ids))
	for _, pid := range ids {
		result = append(result, *c.byID[pid])
	}
	return result
}

// Dependents returns skills that list the given skill as a prerequisite,
// in catalog order.
func (c *Catalog) Dependents(id string) []Skill {
	depIDs := c.dependents[id]
	result := make([]Skill, 0, len(depIDs))
	for _, depID := range depIDs {
		result = append(result, *c.byID[depID])
	}
	return result
}

// ByCategory returns the skills in a category, ordered by level then
// topological position.
func (c *Catalog) ByCategory(category string) []Skill {
	return slices.Clone(c.byCategory[category])
}

// Categories returns all categories, sorted.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// RootSkills returns all skills with no resolved prerequisites.
func (c *Catalog) RootSkills() []Skill {
	var roots []Skill
	for _, s := range c.uniqueSkills() {
		if len(c.prereqIDs[s.ID]) == 0 {
			roots = append(roots, s)
		}
	}
	return roots
}

// TopologicalOrder returns all acyclic skills in a valid topological order.
func (c *Catalog) TopologicalOrder() []Skill {
	return slices.Clone(c.topoOrder)
}

// Unresolved returns, per skill ID, the prerequisite names that matched no
// skill in the catalog.
func (c *Catalog) Unresolved() map[string][]string {
	out := make(map[string][]string, len(c.unresolved))
	for id, names := range c.unresolved {
		out[id] = slices.Clone(names)
	}
	return out
}
