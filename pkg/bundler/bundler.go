// Package bundler orchestrates one build: resolve the entry, discover the
// dependency graph, lint it, and generate the bundle text. The CLI and the
// watcher drive builds exclusively through this package.
package bundler

import (
	"context"
	"time"

	"github.com/moonpack-dev/moonpack/pkg/config"
	"github.com/moonpack-dev/moonpack/pkg/emit"
	"github.com/moonpack-dev/moonpack/pkg/fsutil"
	"github.com/moonpack-dev/moonpack/pkg/graph"
	"github.com/moonpack-dev/moonpack/pkg/lint"
	"github.com/moonpack-dev/moonpack/pkg/resolve"
)

// Result holds everything one build produced.
type Result struct {
	// Graph is the discovered dependency graph.
	Graph *graph.Graph

	// Lint holds the advisory findings.
	Lint *lint.Result

	// Bundle is the generated script text.
	Bundle string

	// OutputPath is where WriteOutput will place the bundle.
	OutputPath string

	// Duration is how long graph discovery, lint, and generation took.
	Duration time.Duration
}

// ModuleCount returns the number of bundled modules including the entry.
func (r *Result) ModuleCount() int {
	return len(r.Graph.Modules)
}

// WriteOutput writes the bundle to OutputPath atomically, skipping the write
// when the file already has identical content. Returns whether it wrote.
func (r *Result) WriteOutput(ctx context.Context) (bool, error) {
	return fsutil.WriteAtomicIfChanged(ctx, r.OutputPath, []byte(r.Bundle), 0)
}

// ResolverFor constructs the resolver the config selects, rooted at the
// project's source root.
func ResolverFor(cfg *config.Config, projectRoot string) resolve.Resolver {
	sourceRoot := cfg.SourceRootPath(projectRoot)
	if cfg.Resolver == config.ResolverDotted {
		return resolve.NewDotted(sourceRoot, cfg.Externals)
	}
	return resolve.NewRelative(sourceRoot)
}

// BuildDependencyGraph discovers the module graph for the configured entry.
func BuildDependencyGraph(ctx context.Context, cfg *config.Config, projectRoot string) (*graph.Graph, error) {
	return graph.Build(ctx, graph.BuildOptions{
		EntryPath: cfg.EntryPath(projectRoot),
		Resolver:  ResolverFor(cfg, projectRoot),
	})
}

// LintGraph runs the advisory checks over a built graph.
func LintGraph(g *graph.Graph, resolver resolve.Resolver) *lint.Result {
	return lint.Run(g, resolver)
}

// GenerateBundle renders the bundle text for a built graph.
func GenerateBundle(g *graph.Graph, cfg *config.Config) string {
	return emit.Generate(g, cfg)
}

// Run executes the full pipeline. It does not write the output file; call
// Result.WriteOutput for that.
func Run(ctx context.Context, cfg *config.Config, projectRoot string) (*Result, error) {
	start := time.Now()

	resolver := ResolverFor(cfg, projectRoot)
	g, err := graph.Build(ctx, graph.BuildOptions{
		EntryPath: cfg.EntryPath(projectRoot),
		Resolver:  resolver,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Graph:      g,
		Lint:       lint.Run(g, resolver),
		Bundle:     emit.Generate(g, cfg),
		OutputPath: cfg.OutputPath(projectRoot),
	}
	result.Duration = time.Since(start)
	return result, nil
}
