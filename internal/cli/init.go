package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the file written by init and migrate.
const defaultConfigFile = ".mdfix.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an mdfix configuration file",
		Long: `Create a new .mdfix.yml configuration file in the current directory
with the default settings. The file can be edited to change the line length
limit, ignore patterns, backups and the rule table.

Examples:
  mdfix init                      Create a minimal .mdfix.yml
  mdfix init --full               Document every rule in the file
  mdfix init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	absPath, err := prepareOutput(cmd, flags.output, flags.force)
	if err != nil {
		return err
	}

	content := config.GenerateTemplate(config.TemplateOptions{Full: flags.full}, rules.NewRegistry().Infos)

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if flags.full {
		logger.Info("full template documents every rule")
	}
	logger.Info("run 'mdfix rules' to see the rule table")

	return nil
}

// prepareOutput resolves path and refuses to replace an existing file
// unless force is set or the user confirms on a terminal.
func prepareOutput(cmd *cobra.Command, path string, force bool) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return absPath, nil
	}

	if !force && !confirmOverwrite(cmd, path) {
		return "", &usageError{err: fmt.Errorf("file %q already exists; use --force to overwrite", path)}
	}
	logging.FromContext(commandContext(cmd)).Warn("overwriting existing file", logging.FieldPath, path)

	return absPath, nil
}

// confirmOverwrite asks before replacing path. It never prompts when stdin
// is not a terminal.
func confirmOverwrite(cmd *cobra.Command, path string) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s already exists. Overwrite? [y/N] ", path)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
