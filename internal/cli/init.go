package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moonpack-dev/moonpack/internal/configloader"
	"github.com/moonpack-dev/moonpack/internal/logging"
	"github.com/moonpack-dev/moonpack/pkg/config"
)

// configFilePermissions is the file mode for scaffolded files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force bool
	name  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a new moonpack project",
		Long: `Create a moonpack.json and a src/main.lua starter in the given directory
(default: current directory). Prompts for the project name when run
interactively; otherwise the directory name is used.

Examples:
  moonpack init                  Scaffold in the current directory
  moonpack init myscript         Scaffold in ./myscript
  moonpack init --name cool-mod  Skip the name prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInit(args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing moonpack.json")
	cmd.Flags().StringVar(&flags.name, "name", "", "Project name (skips the prompt)")

	return cmd
}

func runInit(args []string, flags *initFlags) error {
	logger := logging.NewInteractive()

	root, err := filepath.Abs(projectRoot(args))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	configPath := filepath.Join(root, configloader.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !flags.force {
		return fmt.Errorf("%s already exists; use --force to overwrite", configloader.ConfigFileName)
	}

	name := flags.name
	if name == "" {
		name = promptName(filepath.Base(root))
	}

	cfg := config.New()
	cfg.Name = name
	cfg.Version = "0.1.0"
	cfg.Entry = "src/main.lua"

	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, append(content, '\n'), configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	entryPath := cfg.EntryPath(root)
	if err := writeEntryTemplate(entryPath, name); err != nil {
		return err
	}

	logger.Info("created project", logging.FieldPath, root)
	logger.Info("created configuration", logging.FieldPath, configloader.ConfigFileName)
	logger.Info("created entry", logging.FieldPath, cfg.Entry)
	logger.Info("run 'moonpack build' to bundle, 'moonpack watch' to rebuild on change")

	return nil
}

// promptName asks for the project name when stdin is a terminal; otherwise
// it falls back to the default without blocking.
func promptName(fallback string) string {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fallback
	}

	fmt.Printf("Project name [%s]: ", fallback)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return fallback
	}
	return response
}

// writeEntryTemplate creates the starter entry file unless one exists.
func writeEntryTemplate(path, name string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create source directory: %w", err)
	}

	template := fmt.Sprintf(`script_name('%s')

function main()
    while true do
        wait(0)
    end
end
`, name)

	if err := os.WriteFile(path, []byte(template), configFilePermissions); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}
