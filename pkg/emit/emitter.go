// Package emit produces the final bundle text: header, loader shim, wrapped
// modules in dependency order, then the entry source.
package emit

import (
	"strings"

	"github.com/moonpack-dev/moonpack/pkg/config"
	"github.com/moonpack-dev/moonpack/pkg/graph"
	"github.com/moonpack-dev/moonpack/pkg/localize"
	"github.com/moonpack-dev/moonpack/pkg/requires"
)

// shim is the loader runtime embedded at the top of every bundle. __load
// executes each registered thunk at most once and memoizes its value;
// unregistered names fall through to the host's native require.
const shim = `local __modules = {}
local __loaded = {}

local function __load(name)
    if __loaded[name] then return __loaded[name] end
    if __modules[name] then
        __loaded[name] = __modules[name]()
        return __loaded[name]
    end
    return require(name)
end`

// indent is prefixed to every non-empty line of a wrapped module body.
const indent = "    "

// Generate renders the bundle for a built graph. The output is UTF-8 with LF
// line endings and is deterministic for a fixed graph and config.
func Generate(g *graph.Graph, cfg *config.Config) string {
	blocks := []string{
		header(cfg),
	}

	if meta := metadata(cfg); meta != "" {
		blocks = append(blocks, meta)
	}

	blocks = append(blocks, shim)

	for _, id := range g.Order {
		if id == g.Entry {
			continue
		}
		blocks = append(blocks, wrapModule(id, g.Modules[id]))
	}

	entry := g.Modules[g.Entry]
	entrySource := requires.RewriteSites(entry.Source, entry.Requires, entry.RequireMappings)
	blocks = append(blocks, strings.TrimRight(string(entrySource), "\n"))

	return strings.Join(blocks, "\n\n") + "\n"
}

// header renders the leading comment lines.
func header(cfg *config.Config) string {
	title := "-- " + cfg.Name
	if cfg.Version != "" {
		title += " v" + cfg.Version
	}
	return title + "\n-- Bundled with moonpack. Do not edit by hand."
}

// metadata renders the MoonLoader script metadata calls for the fields the
// config provides.
func metadata(cfg *config.Config) string {
	var lines []string

	if cfg.Name != "" {
		lines = append(lines, "script_name("+quote(cfg.Name)+")")
	}
	switch len(cfg.Author) {
	case 0:
	case 1:
		lines = append(lines, "script_author("+quote(cfg.Author[0])+")")
	default:
		quoted := make([]string, len(cfg.Author))
		for i, a := range cfg.Author {
			quoted[i] = quote(a)
		}
		lines = append(lines, "script_authors("+strings.Join(quoted, ", ")+")")
	}
	if cfg.Description != "" {
		lines = append(lines, "script_description("+quote(cfg.Description)+")")
	}
	if cfg.Version != "" {
		lines = append(lines, "script_version("+quote(cfg.Version)+")")
	}
	if cfg.URL != "" {
		lines = append(lines, "script_url("+quote(cfg.URL)+")")
	}

	return strings.Join(lines, "\n")
}

// quote renders s as a single-quoted Lua string literal.
func quote(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return "'" + r.Replace(s) + "'"
}

// wrapModule localizes and rewrites one non-entry module and wraps it as a
// deferred thunk.
func wrapModule(id string, node *graph.Node) string {
	body := localize.Apply(node.Source)
	body = requires.Rewrite(body, node.RequireMappings)

	var b strings.Builder
	b.WriteString(`__modules["` + id + `"] = function()` + "\n")
	b.WriteString(indentBody(string(body)))
	b.WriteString("\nend")
	return b.String()
}

// indentBody prefixes every non-empty line with the module indent.
func indentBody(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
