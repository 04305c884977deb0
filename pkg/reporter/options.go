package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdfix/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the report (typically os.Stdout).
	Writer io.Writer

	// Format selects the reporter.
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line under each finding.
	ShowContext bool

	// ShowSummary prints aggregate statistics after the results.
	ShowSummary bool

	// Verbose also lists valid files with their document counts.
	Verbose bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// WorkingDir makes paths relative for display. Empty keeps them as-is.
	WorkingDir string
}

// DefaultOptions returns Options with defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatName,
	}
}

// displayPath returns path relative to the working directory when that
// does not climb out of it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
