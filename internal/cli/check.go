package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/check"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/reporter"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// Standard input is selected with "-" and reported as "<stdin>".
const (
	stdinArg  = "-"
	stdinPath = "<stdin>"
)

type checkFlags struct {
	fix           bool
	dryRun        bool
	noBackups     bool
	format        string
	flavor        string
	ruleFormat    string
	maxLineLength int
	jobs          int
	ignore        []string
	enable        []string
	disable       []string
	noContext     bool
	noSummary     bool
	verbose       bool
}

func newCheckCommand(global *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...|-]",
		Short: "Validate Markdown files and optionally fix them",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, global, flags)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Validate the structure of Markdown files.

By default, checks all .md and .markdown files in the current directory
and subdirectories. Valid files are listed with their document counts
when --verbose is set.

With --fix each invalid file is rewritten once. Findings the fixer could
not resolve are reported as requiring manual attention. A sidecar
.mdfix.bak copy is kept unless --no-backups is given.

Pass "-" to read a document from standard input. With --fix the fixed
document is written to standard output and the report to standard error.

Examples:
  mdfix check                      # Check the current directory
  mdfix check docs/ README.md      # Check specific paths
  mdfix check --fix                # Fix files in place
  mdfix check --dry-run            # Show the fixes as a diff
  mdfix check --format wire        # One "<message> [line:col]" per finding
  cat doc.md | mdfix check --fix - # Fix a document from a pipe`

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "rewrite invalid files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes as a diff without writing them")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not keep a backup copy when fixing")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, wire, diff")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor for the rule table: commonmark, gfm")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", config.DefaultMaxLineLength,
		"line length limit for the structural checks")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (ID or name)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (ID or name)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source lines in text output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary in text output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list valid files")
}

// toConfig returns the configuration layer set by flags. Only flags given
// on the command line override lower layers.
func (f *checkFlags) toConfig(cmd *cobra.Command) (*config.Config, error) {
	changed := cmd.Flags().Changed

	cfg := &config.Config{
		Fix:          f.fix,
		DryRun:       f.dryRun,
		NoBackups:    f.noBackups,
		Jobs:         f.jobs,
		Ignore:       f.ignore,
		EnableRules:  f.enable,
		DisableRules: f.disable,
	}
	if changed("format") {
		format, err := reporter.ParseFormat(f.format)
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg.Format = format
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	if changed("max-line-length") {
		cfg.MaxLineLength = f.maxLineLength
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string, global *globalFlags, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	useStdin := slices.Contains(args, stdinArg)
	if useStdin && len(args) > 1 {
		return &usageError{err: errors.New(`"-" cannot be combined with other paths`)}
	}

	cliCfg, err := flags.toConfig(cmd)
	if err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(ctx, global, cliCfg)
	if err != nil {
		return err
	}

	format := cfg.Format
	if cfg.DryRun && !cmd.Flags().Changed("format") {
		format = reporter.FormatDiff
	}

	checker, err := check.New(cfg)
	if err != nil {
		return fmt.Errorf("resolve rules: %w", err)
	}
	for _, rule := range checker.Rules() {
		logger.Debug("rule enabled", logging.FieldRule, rule.Rule.ID(), logging.FieldSeverity, rule.Severity)
	}
	checkRunner := runner.New(checker)

	out := cmd.OutOrStdout()
	var result *runner.Result

	if useStdin {
		outcome, err := readStdin(cmd.InOrStdin(), checkRunner, cfg)
		if err != nil {
			return err
		}
		result = runner.NewResult(outcome)

		if cfg.Fix && !cfg.DryRun {
			fixed := outcome.Content
			if outcome.Fixed {
				fixed = outcome.FixedContent
			}
			if _, err := out.Write(fixed); err != nil {
				return fmt.Errorf("write fixed document: %w", err)
			}
			out = cmd.ErrOrStderr()
		}
	} else {
		opts := runner.OptionsFromConfig(cfg, args)
		opts.WorkingDir = workDir

		logger.Debug("starting check run",
			logging.FieldPaths, opts.Paths,
			logging.FieldWorkingDir, opts.WorkingDir,
			logging.FieldJobs, opts.Jobs,
		)

		result, err = checkRunner.Run(ctx, opts)
		if err != nil {
			return fmt.Errorf("check run failed: %w", err)
		}
	}

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("could not process file", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		Format:      format,
		Color:       global.color,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Verbose:     flags.verbose,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return &usageError{err: err}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitFindings:
		return ErrFindings
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}

// readStdin checks a document read from r. Fixing never writes back.
func readStdin(r io.Reader, checkRunner *runner.Runner, cfg *config.Config) (runner.FileOutcome, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return runner.FileOutcome{}, fmt.Errorf("read stdin: %w", err)
	}
	return checkRunner.ProcessContent(stdinPath, content, cfg), nil
}
