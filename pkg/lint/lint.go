// Package lint runs the static checks over a built dependency graph. All
// findings are advisory: they are returned for display and never fail a
// build.
package lint

import (
	"sort"

	"github.com/moonpack-dev/moonpack/pkg/graph"
	"github.com/moonpack-dev/moonpack/pkg/resolve"
)

// ExternalAssignment is one write to a property of a variable that aliases an
// external module.
type ExternalAssignment struct {
	// VarName is the alias variable.
	VarName string

	// PropertyPath is the full dotted target, e.g. "sampev.onServerMessage".
	PropertyPath string

	// ModuleName is the external import the variable aliases.
	ModuleName string

	// FilePath is the file containing the assignment.
	FilePath string

	// Line is the 1-based line of the assignment.
	Line int
}

// DuplicateAssignment groups assignments to the same property path across
// more than one file. The later assignment silently clobbers the earlier one
// at runtime, which is almost never intended.
type DuplicateAssignment struct {
	PropertyPath string
	Occurrences  []ExternalAssignment
}

// EventInModule is a MoonLoader event handler declared in a module other than
// the entry. The host only calls handlers defined at the entry's top level,
// so these never fire.
type EventInModule struct {
	EventName string
	FilePath  string
	Line      int
}

// UnusedRequire is a local import whose variable is never referenced again.
type UnusedRequire struct {
	VarName    string
	ModuleName string
	FilePath   string
	Line       int
}

// Result collects all findings of one lint pass.
type Result struct {
	DuplicateAssignments []DuplicateAssignment
	EventsInModules      []EventInModule
	UnusedRequires       []UnusedRequire
}

// Empty reports whether the pass produced no findings.
func (r *Result) Empty() bool {
	return len(r.DuplicateAssignments) == 0 &&
		len(r.EventsInModules) == 0 &&
		len(r.UnusedRequires) == 0
}

// Count returns the total number of findings.
func (r *Result) Count() int {
	return len(r.DuplicateAssignments) + len(r.EventsInModules) + len(r.UnusedRequires)
}

// Run executes every check over the graph. The resolver must be the one the
// graph was built with; it decides which imports classify as external.
func Run(g *graph.Graph, resolver resolve.Resolver) *Result {
	result := &Result{}

	checkDuplicateAssignments(g, resolver, result)
	checkEventsInModules(g, result)
	checkUnusedRequires(g, result)

	return result
}

// sortedByPath orders duplicate groups for stable output.
func sortedByPath(groups map[string][]ExternalAssignment) []DuplicateAssignment {
	paths := make([]string, 0, len(groups))
	for path := range groups {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	dups := make([]DuplicateAssignment, 0, len(paths))
	for _, path := range paths {
		dups = append(dups, DuplicateAssignment{
			PropertyPath: path,
			Occurrences:  groups[path],
		})
	}
	return dups
}
