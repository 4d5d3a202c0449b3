package resolve

import (
	"path/filepath"
	"strings"
)

// RelativeResolver implements the relative-path dialect: an import starting
// with `./` or `../` is bundled, everything else is external. Module ids are
// slash-separated paths relative to the source root with the extension and a
// trailing /init segment stripped.
type RelativeResolver struct {
	sourceRoot string
}

// NewRelative creates a relative-path resolver rooted at sourceRoot.
func NewRelative(sourceRoot string) *RelativeResolver {
	return &RelativeResolver{sourceRoot: filepath.Clean(sourceRoot)}
}

// Resolve implements Resolver.
func (r *RelativeResolver) Resolve(importName, requesterPath string) Resolution {
	if !strings.HasPrefix(importName, "./") && !strings.HasPrefix(importName, "../") {
		return external()
	}

	joined := filepath.Join(filepath.Dir(requesterPath), filepath.FromSlash(importName))

	direct := joined
	if !strings.HasSuffix(direct, luaExt) {
		direct += luaExt
	}
	if fileExists(direct) {
		return Resolution{
			Kind:         KindModule,
			ModuleID:     r.ModuleIDForPath(direct),
			AbsolutePath: direct,
		}
	}

	init := filepath.Join(joined, "init"+luaExt)
	if fileExists(init) {
		return Resolution{
			Kind:         KindModule,
			ModuleID:     r.ModuleIDForPath(init),
			AbsolutePath: init,
		}
	}

	return notFound()
}

// ModuleIDForPath implements Resolver.
func (r *RelativeResolver) ModuleIDForPath(absPath string) string {
	id := relPath(r.sourceRoot, absPath)
	id = strings.TrimSuffix(id, luaExt)
	id = strings.TrimSuffix(id, "/init")
	return id
}
