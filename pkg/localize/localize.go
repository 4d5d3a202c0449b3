// Package localize rewrites top-level `function name(...)` declarations to
// `local function name(...)` so a bundled module's helpers do not leak into
// the global environment. Dotted and colon method declarations are left
// alone, as is anything already declared local. The entry module is never
// localized; that is the caller's responsibility.
package localize

import (
	"regexp"

	"github.com/moonpack-dev/moonpack/pkg/edit"
	"github.com/moonpack-dev/moonpack/pkg/lexscan"
)

// functionDecl matches a plain named function declaration. The mandatory
// opening paren right after the identifier keeps dotted (a.b) and colon (a:b)
// forms from matching.
var functionDecl = regexp.MustCompile(`\bfunction\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// Decl is a global function declaration found in code regions.
type Decl struct {
	// Name is the declared function name.
	Name string

	// Offset is the byte offset of the `function` keyword.
	Offset int
}

// Declarations returns every global (non-local, non-dotted) function
// declaration in src, skipping matches inside strings and comments. The lint
// pass reuses this to spot host event handlers declared in library modules.
func Declarations(src []byte, spans *lexscan.Spans) []Decl {
	var decls []Decl

	for _, m := range functionDecl.FindAllSubmatchIndex(src, -1) {
		offset := m[0]
		if spans.Excluded(offset) {
			continue
		}
		if precededByLocal(src, offset) {
			continue
		}
		decls = append(decls, Decl{
			Name:   string(src[m[2]:m[3]]),
			Offset: offset,
		})
	}

	return decls
}

// Apply returns src with every eligible function declaration prefixed with
// `local `. Applying it twice is a no-op: declarations that already carry the
// keyword are skipped.
func Apply(src []byte) []byte {
	spans := lexscan.Scan(src)
	edits := Edits(src, spans)

	prepared, err := edit.Prepare(edits, len(src))
	if err != nil {
		// Offsets come from regexp matches over src; out-of-range edits
		// cannot happen.
		panic(err)
	}

	return edit.Apply(src, prepared)
}

// Edits returns the insertion edits Apply would perform.
func Edits(src []byte, spans *lexscan.Spans) []edit.Edit {
	decls := Declarations(src, spans)

	edits := make([]edit.Edit, 0, len(decls))
	for _, d := range decls {
		edits = append(edits, edit.Insert(d.Offset, "local "))
	}
	return edits
}

// precededByLocal reports whether the bytes before offset, skipping spaces
// and tabs, end with the keyword `local`.
func precededByLocal(src []byte, offset int) bool {
	i := offset
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}

	const kw = "local"
	if i < len(kw) || string(src[i-len(kw):i]) != kw {
		return false
	}

	// The keyword needs a boundary on its left: start of buffer or a
	// non-identifier byte.
	before := i - len(kw)
	if before == 0 {
		return true
	}
	return !isIdentByte(src[before-1])
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
