package lint

import (
	"regexp"

	"github.com/moonpack-dev/moonpack/pkg/graph"
	"github.com/moonpack-dev/moonpack/pkg/lexscan"
	"github.com/moonpack-dev/moonpack/pkg/requires"
)

// checkUnusedRequires flags local imports whose variable never appears again
// outside its own declaration line.
func checkUnusedRequires(g *graph.Graph, result *Result) {
	for _, id := range g.Order {
		node := g.Modules[id]

		for _, decl := range requires.ExtractImports(node.Source, node.Spans) {
			if !decl.Local {
				continue
			}
			if usedOutsideDeclaration(node, decl) {
				continue
			}
			result.UnusedRequires = append(result.UnusedRequires, UnusedRequire{
				VarName:    decl.VarName,
				ModuleName: decl.ModuleName,
				FilePath:   node.AbsolutePath,
				Line:       decl.Line,
			})
		}
	}
}

// usedOutsideDeclaration reports whether the identifier occurs in any code
// region on a line other than the declaration's.
func usedOutsideDeclaration(node *graph.Node, decl requires.ImportDecl) bool {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(decl.VarName) + `\b`)

	for _, m := range pattern.FindAllIndex(node.Source, -1) {
		if node.Spans.Excluded(m[0]) {
			continue
		}
		line, _ := lexscan.LineColumn(node.Source, m[0])
		if line != decl.Line {
			return true
		}
	}
	return false
}
