package skillgraph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrCatalogDowngrade is returned when a catalog older than one already
// recorded for this installation is loaded.
var ErrCatalogDowngrade = errors.New("catalog downgrade")

// Validate checks the catalog for structural issues.
// Returns a combined error describing all problems found, or nil if valid.
func (c *Catalog) Validate() error {
	return validateSkills(c.version, c.skills)
}

// validateSkills performs all structural checks on the given skill set.
func validateSkills(version string, skills []Skill) error {
	var errs []string

	if !semver.IsValid(version) {
		errs = append(errs, fmt.Sprintf("catalog version %q is not a valid semantic version (want e.g. v1.0.0)", version))
	}

	idSet := make(map[string]bool, len(skills))
	nameToID := make(map[string]string, len(skills))

	for _, s := range skills {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("skill %q has an empty ID", s.Name))
		}
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("skill %q has an empty name", s.ID))
		}
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		idSet[s.ID] = true
		if prev, ok := nameToID[s.Name]; ok {
			errs = append(errs, fmt.Sprintf("duplicate skill name %q (skills %q and %q)", s.Name, prev, s.ID))
		} else {
			nameToID[s.Name] = s.ID
		}
		if !s.Level.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q has unknown level %q", s.ID, s.Level))
		}
	}

	// Check for dangling prerequisite names.
	for _, s := range skills {
		for _, name := range s.Prerequisites {
			if _, ok := nameToID[name]; !ok {
				errs = append(errs, fmt.Sprintf("skill %q references nonexistent prerequisite %q", s.ID, name))
			}
		}
	}

	// Check for cycles using Kahn's algorithm over resolved edges.
	inDegree := make(map[string]int, len(skills))
	adjList := make(map[string][]string)
	for _, s := range skills {
		for _, name := range s.Prerequisites {
			prereqID, ok := nameToID[name]
			if !ok {
				continue
			}
			inDegree[s.ID]++
			adjList[prereqID] = append(adjList[prereqID], s.ID)
		}
	}

	var queue []string
	for _, s := range skills {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(skills) {
		var cycleNodes []string
		for _, s := range skills {
			if inDegree[s.ID] > 0 {
				cycleNodes = append(cycleNodes, s.ID)
			}
		}
		sort.Strings(cycleNodes)
		errs = append(errs, fmt.Sprintf("cycle detected involving skills: %s", strings.Join(cycleNodes, ", ")))
	}

	// Check at least one root.
	hasRoot := false
	for _, s := range skills {
		if len(s.Prerequisites) == 0 {
			hasRoot = true
			break
		}
	}
	if len(skills) > 0 && !hasRoot {
		errs = append(errs, "no root skills found (at least one skill must have no prerequisites)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// CheckUpgrade returns ErrCatalogDowngrade when loaded is older than the
// previously recorded version. An empty recorded version always passes.
func CheckUpgrade(recorded, loaded string) error {
	if recorded == "" {
		return nil
	}
	if semver.Compare(loaded, recorded) < 0 {
		return fmt.Errorf("%w: loaded %s is older than recorded %s", ErrCatalogDowngrade, loaded, recorded)
	}
	return nil
}
