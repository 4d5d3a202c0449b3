package requires

import (
	"github.com/moonpack-dev/moonpack/pkg/edit"
	"github.com/moonpack-dev/moonpack/pkg/lexscan"
)

// Rewrite replaces every bundled require site in src with a loader call.
// The mapping keys are raw import names as written in the source; values are
// the module ids registered in the bundle. Sites whose name is absent from
// the mapping (externals, unresolved names) are left byte-for-byte unchanged,
// so an empty mapping makes Rewrite the identity function.
func Rewrite(src []byte, mapping map[string]string) []byte {
	if len(mapping) == 0 {
		return src
	}

	spans := lexscan.Scan(src)
	sites := Extract(src, spans)
	return RewriteSites(src, sites, mapping)
}

// RewriteSites is Rewrite for callers that already extracted the sites.
func RewriteSites(src []byte, sites []Site, mapping map[string]string) []byte {
	var edits []edit.Edit

	for _, s := range sites {
		moduleID, ok := mapping[s.ModuleName]
		if !ok {
			continue
		}
		edits = append(edits, edit.Replace(s.Offset, s.end(), s.replacement(moduleID)))
	}

	prepared, err := edit.Prepare(edits, len(src))
	if err != nil {
		// Ranges come straight from regexp matches over src, so they are
		// always in bounds; an error here is a programming bug.
		panic(err)
	}

	return edit.Apply(src, prepared)
}

// replacement renders the loader call for the site, preserving the original
// quote character.
func (s Site) replacement(moduleID string) string {
	q := string(s.Quote)
	if s.Kind == KindPcall {
		return "pcall(__load, " + q + moduleID + q + ")"
	}
	return "__load(" + q + moduleID + q + ")"
}
