package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moonpack-dev/moonpack/internal/configloader"
	"github.com/moonpack-dev/moonpack/internal/logging"
	"github.com/moonpack-dev/moonpack/internal/watch"
)

type watchFlags struct {
	debounceMs int
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Rebuild the project on every source change",
		Long: `Build the project, then keep watching the source root and rebuild after
every debounced change burst. Build failures are logged and the watcher keeps
running; stop it with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.debounceMs, "debounce", 200, "debounce window in milliseconds")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := filepath.Abs(projectRoot(args))
	if err != nil {
		return err
	}

	logger := logging.Default()
	styles := stylesFor(cmd)

	// The config must load once so we know what to watch; afterwards it is
	// re-read on every rebuild to pick up edits.
	cfg, err := configloader.Load(root)
	if err != nil {
		return err
	}
	outputPath := cfg.OutputPath(root)

	rebuild := func() {
		if _, err := buildOnce(ctx, root, styles); err != nil {
			logger.Error("build failed", logging.FieldError, err)
		}
	}

	rebuild()

	watcher, err := watch.New(watch.Options{
		Roots:    []string{cfg.SourceRootPath(root)},
		Debounce: time.Duration(flags.debounceMs) * time.Millisecond,
		Filter: func(path string) bool {
			if path == outputPath {
				return false
			}
			return strings.HasSuffix(path, ".lua")
		},
		OnChange: func(paths []string) {
			logger.Info("change detected", logging.FieldEvent, strings.Join(paths, ", "))
			rebuild()
		},
	})
	if err != nil {
		return err
	}

	logger.Info("watching for changes",
		logging.FieldPath, cfg.SourceRootPath(root),
		logging.FieldDebounce, flags.debounceMs,
	)

	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
