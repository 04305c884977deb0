package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/check"
)

// defaultPreviewWidth is the word-wrap width when the terminal size is unknown.
const defaultPreviewWidth = 80

type previewFlags struct {
	raw   bool
	width int
}

func newPreviewCommand(global *globalFlags) *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file|->",
		Short: "Render the fixed version of a document",
		Long: `Fix a document in memory and render the result in the terminal.

Nothing is written to disk. Findings that would remain after fixing are
logged as warnings. Use --raw to print the fixed Markdown source instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print the fixed Markdown without rendering")
	cmd.Flags().IntVar(&flags.width, "width", 0, "word-wrap width (0 = terminal width)")

	return cmd
}

func runPreview(cmd *cobra.Command, path string, global *globalFlags, flags *previewFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, _, err := loadConfig(ctx, global, nil)
	if err != nil {
		return err
	}

	checker, err := check.New(cfg)
	if err != nil {
		return fmt.Errorf("resolve rules: %w", err)
	}

	content, err := readDocument(cmd, path)
	if err != nil {
		return err
	}

	report := checker.CheckAndFix(string(content))
	logger.Debug("fixed document",
		logging.FieldPath, path,
		logging.FieldFindings, len(report.OriginalFindings),
		logging.FieldResidual, len(report.ResidualFindings),
	)
	for _, f := range report.ResidualFindings {
		logger.Warn("requires manual attention", logging.FieldPath, path, logging.FieldFindings, f.String())
	}

	out := cmd.OutOrStdout()
	if flags.raw {
		_, err := io.WriteString(out, report.FixedText)
		if err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		return nil
	}

	rendered, err := renderMarkdown(report.FixedText, pretty.IsColorEnabled(global.color, out), previewWidth(flags.width))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinArg {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// renderMarkdown renders text for the terminal. Without color the plain
// "notty" style is used.
func renderMarkdown(text string, color bool, width int) (string, error) {
	style := "notty"
	if color {
		style = "dark"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return rendered, nil
}

func previewWidth(requested int) int {
	if requested > 0 {
		return requested
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultPreviewWidth
}
