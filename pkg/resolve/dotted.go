package resolve

import (
	"path/filepath"
	"strings"
)

// DottedResolver implements the dotted-name dialect: imports are dotted Lua
// module names resolved under the source root, and a configured prefix list
// decides which names are external. Module ids keep the dot separators and
// strip a trailing .init segment.
type DottedResolver struct {
	sourceRoot string
	externals  []string
}

// NewDotted creates a dotted-name resolver rooted at sourceRoot. Imports
// equal to an entry of externals, or starting with an entry plus a dot, are
// classified external.
func NewDotted(sourceRoot string, externals []string) *DottedResolver {
	return &DottedResolver{
		sourceRoot: filepath.Clean(sourceRoot),
		externals:  externals,
	}
}

// Resolve implements Resolver.
func (r *DottedResolver) Resolve(importName, _ string) Resolution {
	if r.isExternal(importName) {
		return external()
	}

	slashed := strings.ReplaceAll(importName, ".", "/")

	direct := filepath.Join(r.sourceRoot, filepath.FromSlash(slashed)+luaExt)
	if fileExists(direct) {
		return Resolution{
			Kind:         KindModule,
			ModuleID:     r.ModuleIDForPath(direct),
			AbsolutePath: direct,
		}
	}

	init := filepath.Join(r.sourceRoot, filepath.FromSlash(slashed), "init"+luaExt)
	if fileExists(init) {
		return Resolution{
			Kind:         KindModule,
			ModuleID:     r.ModuleIDForPath(init),
			AbsolutePath: init,
		}
	}

	return notFound()
}

func (r *DottedResolver) isExternal(name string) bool {
	for _, ext := range r.externals {
		if name == ext || strings.HasPrefix(name, ext+".") {
			return true
		}
	}
	return false
}

// ModuleIDForPath implements Resolver.
func (r *DottedResolver) ModuleIDForPath(absPath string) string {
	id := relPath(r.sourceRoot, absPath)
	id = strings.TrimSuffix(id, luaExt)
	id = strings.ReplaceAll(id, "/", ".")
	id = strings.TrimSuffix(id, ".init")
	return id
}
