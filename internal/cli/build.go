package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moonpack-dev/moonpack/internal/configloader"
	"github.com/moonpack-dev/moonpack/internal/logging"
	"github.com/moonpack-dev/moonpack/internal/ui/pretty"
	"github.com/moonpack-dev/moonpack/pkg/bundler"
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Bundle the project once",
		Long: `Build the project in the given directory (default: current directory).

Reads moonpack.json (merged with moonpack.local.json when present), discovers
the module graph from the entry file, and writes the bundle to
<outDir>/<name>.lua. Lint findings are printed as warnings and never fail the
build.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args)
		},
	}
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := filepath.Abs(projectRoot(args))
	if err != nil {
		return err
	}

	styles := stylesFor(cmd)

	result, err := buildOnce(ctx, root, styles)
	if err != nil {
		return err
	}

	logging.Default().Debug("build finished",
		logging.FieldModules, result.ModuleCount(),
		logging.FieldDuration, result.Duration,
	)
	return nil
}

// buildOnce runs one full build for the project at root, printing warnings
// and the summary line. Shared by build and watch.
func buildOnce(ctx context.Context, root string, styles *pretty.Styles) (*bundler.Result, error) {
	cfg, err := configloader.Load(root)
	if err != nil {
		return nil, err
	}

	result, err := bundler.Run(ctx, cfg, root)
	if err != nil {
		return nil, err
	}

	printer := pretty.NewWarningPrinter(styles, root)
	printer.Print(os.Stdout, result.Lint)

	if _, err := result.WriteOutput(ctx); err != nil {
		return nil, err
	}

	output := result.OutputPath
	if rel, err := filepath.Rel(root, output); err == nil {
		output = rel
	}
	_, _ = os.Stdout.WriteString(
		styles.FormatBuildSummary(result.ModuleCount(), result.Lint.Count(), output, result.Duration) + "\n")

	return result, nil
}

// stylesFor builds the style set honoring the root --color flag.
func stylesFor(cmd *cobra.Command) *pretty.Styles {
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(color, os.Stdout))
}
