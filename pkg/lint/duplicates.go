package lint

import (
	"regexp"

	"github.com/moonpack-dev/moonpack/pkg/graph"
	"github.com/moonpack-dev/moonpack/pkg/lexscan"
	"github.com/moonpack-dev/moonpack/pkg/requires"
	"github.com/moonpack-dev/moonpack/pkg/resolve"
)

// checkDuplicateAssignments finds property paths on external-module aliases
// that are assigned from more than one file. Event tables like sampev only
// keep the last handler assigned to a key, so a second file assigning the
// same key silently disables the first.
func checkDuplicateAssignments(g *graph.Graph, resolver resolve.Resolver, result *Result) {
	groups := make(map[string][]ExternalAssignment)

	for _, id := range g.Order {
		node := g.Modules[id]
		for varName, moduleName := range externalAliases(node, resolver) {
			collectAssignments(node, varName, moduleName, groups)
		}
	}

	for path, occurrences := range groups {
		if !spansMultipleFiles(occurrences) {
			delete(groups, path)
		}
	}

	result.DuplicateAssignments = sortedByPath(groups)
}

// externalAliases maps alias variables declared in node to the external
// module they import.
func externalAliases(node *graph.Node, resolver resolve.Resolver) map[string]string {
	aliases := make(map[string]string)
	for _, decl := range requires.ExtractImports(node.Source, node.Spans) {
		res := resolver.Resolve(decl.ModuleName, node.AbsolutePath)
		if res.Kind == resolve.KindExternal {
			aliases[decl.VarName] = decl.ModuleName
		}
	}
	return aliases
}

// collectAssignments records every assignment or function declaration
// targeting a dotted property of varName.
func collectAssignments(node *graph.Node, varName, moduleName string, groups map[string][]ExternalAssignment) {
	quoted := regexp.QuoteMeta(varName)
	assignPattern := regexp.MustCompile(`\b(` + quoted + `(?:\.[A-Za-z_][A-Za-z0-9_]*)+)\s*=`)
	funcPattern := regexp.MustCompile(`\bfunction\s+(` + quoted + `(?:\.[A-Za-z_][A-Za-z0-9_]*)+)\s*\(`)

	record := func(pathStart, pathEnd, matchStart int, src []byte) {
		path := string(src[pathStart:pathEnd])
		line, _ := lexscan.LineColumn(src, matchStart)
		groups[path] = append(groups[path], ExternalAssignment{
			VarName:      varName,
			PropertyPath: path,
			ModuleName:   moduleName,
			FilePath:     node.AbsolutePath,
			Line:         line,
		})
	}

	src := node.Source
	for _, m := range assignPattern.FindAllSubmatchIndex(src, -1) {
		if node.Spans.Excluded(m[0]) {
			continue
		}
		// `==` is a comparison, not an assignment.
		if m[1] < len(src) && src[m[1]] == '=' {
			continue
		}
		record(m[2], m[3], m[0], src)
	}

	for _, m := range funcPattern.FindAllSubmatchIndex(src, -1) {
		if node.Spans.Excluded(m[0]) {
			continue
		}
		record(m[2], m[3], m[0], src)
	}
}

// spansMultipleFiles reports whether the occurrences touch more than one
// distinct file. Repeated assignments within a single file are left alone;
// that is an ordinary (if odd) rebind, not a cross-file clobber.
func spansMultipleFiles(occurrences []ExternalAssignment) bool {
	files := make(map[string]bool, len(occurrences))
	for _, occ := range occurrences {
		files[occ.FilePath] = true
	}
	return len(files) > 1
}
