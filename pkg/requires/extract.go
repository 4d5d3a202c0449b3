// Package requires locates textual require sites in Lua source and rewrites
// the bundled ones to loader calls. Three site shapes are recognized: the
// parenthesized call, the bare-string call, and the pcall-protected call.
package requires

import (
	"regexp"
	"sort"

	"github.com/moonpack-dev/moonpack/pkg/lexscan"
)

// Kind distinguishes the textual shape of a require site.
type Kind int

const (
	// KindStandard is require("name") with parentheses.
	KindStandard Kind = iota

	// KindCompact is require "name" or require"name" without parentheses.
	KindCompact

	// KindPcall is pcall(require, "name").
	KindPcall
)

// String returns the kind name for logs and test output.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindCompact:
		return "compact"
	case KindPcall:
		return "pcall"
	default:
		return "unknown"
	}
}

// Site is one require occurrence in a source buffer.
type Site struct {
	// ModuleName is the import name between the quotes.
	ModuleName string

	// Kind is the textual shape of the site.
	Kind Kind

	// RawText is the full matched text, used to compute the replacement range.
	RawText string

	// Quote is the quote byte used around the name, preserved on rewrite.
	Quote byte

	// Offset is the byte offset of the match start in the buffer.
	Offset int

	// Line is the 1-based line of the match start.
	Line int

	// Column is the 1-based column of the match start.
	Column int
}

// end returns the exclusive byte offset just past the site's raw text.
func (s Site) end() int {
	return s.Offset + len(s.RawText)
}

// The quoted-name alternation appears in every pattern; the two branches keep
// the quote characters paired without backreferences.
const quoted = `(?:"([^"\r\n]*)"|'([^'\r\n]*)')`

var (
	standardPattern = regexp.MustCompile(`\brequire\s*\(\s*` + quoted + `\s*\)`)
	compactPattern  = regexp.MustCompile(`\brequire\s*` + quoted)
	pcallPattern    = regexp.MustCompile(`\bpcall\s*\(\s*require\s*,\s*` + quoted + `\s*\)`)
)

// Extract returns every require site in src whose start offset lies outside
// the excluded ranges, de-duplicated and sorted by byte offset.
func Extract(src []byte, spans *lexscan.Spans) []Site {
	var sites []Site

	sites = appendMatches(sites, src, spans, standardPattern, KindStandard)
	sites = appendMatches(sites, src, spans, compactPattern, KindCompact)
	sites = appendMatches(sites, src, spans, pcallPattern, KindPcall)

	sites = dropCompactInsideCall(src, sites)
	sites = dedupeOverlapping(sites)

	for i := range sites {
		sites[i].Line, sites[i].Column = lexscan.LineColumn(src, sites[i].Offset)
	}

	return sites
}

// appendMatches collects all matches of one pattern, skipping any whose start
// offset lies inside a string or comment span.
func appendMatches(sites []Site, src []byte, spans *lexscan.Spans, pattern *regexp.Regexp, kind Kind) []Site {
	for _, m := range pattern.FindAllSubmatchIndex(src, -1) {
		start := m[0]
		if spans.Excluded(start) {
			continue
		}

		name, quote := submatchName(src, m)
		sites = append(sites, Site{
			ModuleName: name,
			Kind:       kind,
			RawText:    string(src[m[0]:m[1]]),
			Quote:      quote,
			Offset:     start,
		})
	}
	return sites
}

// submatchName pulls the module name and quote byte out of the match's
// quoted-name alternation (group 1 double-quoted, group 2 single-quoted).
func submatchName(src []byte, m []int) (string, byte) {
	if m[2] >= 0 {
		return string(src[m[2]:m[3]]), '"'
	}
	return string(src[m[4]:m[5]]), '\''
}

// dropCompactInsideCall discards compact sites whose next non-space byte is a
// closing paren; those are fragments of a surrounding call, not standalone
// require statements.
func dropCompactInsideCall(src []byte, sites []Site) []Site {
	kept := sites[:0]
	for _, s := range sites {
		if s.Kind == KindCompact && nextNonSpaceIs(src, s.end(), ')') {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func nextNonSpaceIs(src []byte, from int, want byte) bool {
	for i := from; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t':
			continue
		default:
			return src[i] == want
		}
	}
	return false
}

// dedupeOverlapping resolves overlapping matches by keeping the site with the
// longer raw text, then sorts the survivors by byte offset.
func dedupeOverlapping(sites []Site) []Site {
	sort.SliceStable(sites, func(i, j int) bool {
		if sites[i].Offset != sites[j].Offset {
			return sites[i].Offset < sites[j].Offset
		}
		return len(sites[i].RawText) > len(sites[j].RawText)
	})

	var kept []Site
	for _, s := range sites {
		if n := len(kept); n > 0 {
			prev := &kept[n-1]
			if s.Offset < prev.end() {
				if len(s.RawText) > len(prev.RawText) {
					*prev = s
				}
				continue
			}
		}
		kept = append(kept, s)
	}
	return kept
}

// importPattern matches the declaration form `local <var> = require(<str>)`
// and its bare variant. The linter uses it to map alias variables to the
// modules they import.
var importPattern = regexp.MustCompile(
	`(local\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*=\s*require\s*\(?\s*` + quoted)

// ImportDecl is an alias variable bound to an imported module.
type ImportDecl struct {
	// VarName is the local identifier the module is bound to.
	VarName string

	// ModuleName is the raw import name.
	ModuleName string

	// Local reports whether the declaration carried the `local` keyword.
	Local bool

	// Offset is the byte offset of the declaration start.
	Offset int

	// Line is the 1-based line of the declaration start.
	Line int
}

// ExtractImports returns the alias declarations in src, masked the same way
// as Extract.
func ExtractImports(src []byte, spans *lexscan.Spans) []ImportDecl {
	var decls []ImportDecl

	for _, m := range importPattern.FindAllSubmatchIndex(src, -1) {
		start := m[0]
		if spans.Excluded(start) {
			continue
		}

		name := ""
		if m[6] >= 0 {
			name = string(src[m[6]:m[7]])
		} else if m[8] >= 0 {
			name = string(src[m[8]:m[9]])
		}

		line, _ := lexscan.LineColumn(src, start)
		decls = append(decls, ImportDecl{
			VarName:    string(src[m[4]:m[5]]),
			ModuleName: name,
			Local:      m[2] >= 0,
			Offset:     start,
			Line:       line,
		})
	}

	return decls
}
