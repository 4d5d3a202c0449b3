// Package cli provides the Cobra command structure for moonpack.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moonpack-dev/moonpack/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root moonpack command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "moonpack",
		Short: "Bundle multi-file MoonLoader scripts into a single Lua file",
		Long: `moonpack bundles a multi-file MoonLoader Lua project into one
self-contained script the game can load directly.

It discovers the module graph from the entry file's require calls, rewrites
bundled imports to a memoizing loader, localizes module-level functions, and
warns about cross-file event clobbering before concatenating everything under
a small runtime shim.`,
		Version: info.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("moonpack version=%s commit=%s built=%s\n",
		info.Version, info.Commit, info.Date))

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// projectRoot resolves the optional [dir] argument; it defaults to the
// current directory.
func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
