// Package graph discovers the module dependency graph of a project. Starting
// from the entry file it follows every bundled require transitively, rejects
// cyclic graphs, and produces the topological order the emitter bundles in.
package graph

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/moonpack-dev/moonpack/pkg/errs"
	"github.com/moonpack-dev/moonpack/pkg/fsutil"
	"github.com/moonpack-dev/moonpack/pkg/lexscan"
	"github.com/moonpack-dev/moonpack/pkg/requires"
	"github.com/moonpack-dev/moonpack/pkg/resolve"
)

// Node is one discovered module.
type Node struct {
	// ModuleID is the canonical key of this module in the graph.
	ModuleID string

	// AbsolutePath is the file the module was read from.
	AbsolutePath string

	// Source is the original file content.
	Source []byte

	// Spans are the excluded ranges of Source, shared with later passes.
	Spans *lexscan.Spans

	// Requires lists every require site found in Source.
	Requires []requires.Site

	// Dependencies lists the module ids of bundled dependencies, in first
	// require order, de-duplicated.
	Dependencies []string

	// RequireMappings maps raw import names in Source to resolved module
	// ids. Externals are absent, which is what makes the rewriter leave
	// them untouched.
	RequireMappings map[string]string
}

// Graph is the discovered dependency graph of one build.
type Graph struct {
	// Entry is the module id of the entry file.
	Entry string

	// Modules maps module ids to their nodes.
	Modules map[string]*Node

	// Order is a topological order: every dependency precedes its
	// dependents, and the entry is last.
	Order []string
}

// BuildOptions configures graph discovery.
type BuildOptions struct {
	// EntryPath is the path of the entry file.
	EntryPath string

	// Resolver classifies and resolves import names.
	Resolver resolve.Resolver
}

// Build reads the entry file, discovers all bundled dependencies, rejects
// cycles, and computes the bundle order.
func Build(ctx context.Context, opts BuildOptions) (*Graph, error) {
	entryPath, err := filepath.Abs(opts.EntryPath)
	if err != nil {
		return nil, err
	}

	b := &builder{
		ctx:      ctx,
		resolver: opts.Resolver,
		modules:  make(map[string]*Node),
	}

	entry, err := b.load(entryPath, b.resolver.ModuleIDForPath(entryPath))
	if err != nil {
		return nil, err
	}
	if err := b.discover(entry); err != nil {
		return nil, err
	}

	if cycles := detectCycles(b.modules); len(cycles) > 0 {
		return nil, &errs.CircularDependencyError{Cycles: cycles}
	}

	return &Graph{
		Entry:   entry.ModuleID,
		Modules: b.modules,
		Order:   topoOrder(b.modules, entry.ModuleID),
	}, nil
}

type builder struct {
	ctx      context.Context
	resolver resolve.Resolver
	modules  map[string]*Node
}

// load reads and scans one module file and registers its node.
func (b *builder) load(absPath, moduleID string) (*Node, error) {
	source, err := fsutil.ReadFile(b.ctx, absPath)
	if err != nil {
		return nil, err
	}

	spans := lexscan.Scan(source)
	node := &Node{
		ModuleID:        moduleID,
		AbsolutePath:    absPath,
		Source:          source,
		Spans:           spans,
		Requires:        requires.Extract(source, spans),
		RequireMappings: make(map[string]string),
	}
	b.modules[moduleID] = node
	return node, nil
}

// discover resolves every require site of node, recursing into bundled
// dependencies that have not been loaded yet.
func (b *builder) discover(node *Node) error {
	for _, site := range node.Requires {
		res := b.resolver.Resolve(site.ModuleName, node.AbsolutePath)

		switch res.Kind {
		case resolve.KindExternal:
			continue

		case resolve.KindNotFound:
			return &errs.ModuleNotFoundError{
				ModuleName: site.ModuleName,
				RequiredBy: node.AbsolutePath,
				Line:       site.Line,
			}

		case resolve.KindModule:
			node.RequireMappings[site.ModuleName] = res.ModuleID
			node.Dependencies = appendUnique(node.Dependencies, res.ModuleID)

			if _, loaded := b.modules[res.ModuleID]; loaded {
				continue
			}
			dep, err := b.load(res.AbsolutePath, res.ModuleID)
			if err != nil {
				return err
			}
			if err := b.discover(dep); err != nil {
				return err
			}
		}
	}
	return nil
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

// IsNotFound reports whether err is a missing-module or missing-entry error.
func IsNotFound(err error) bool {
	if errors.Is(err, fsutil.ErrNotFound) {
		return true
	}
	var mnf *errs.ModuleNotFoundError
	return errors.As(err, &mnf)
}
