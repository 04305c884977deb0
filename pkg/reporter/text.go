package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/lineclass"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// TextReporter writes styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if len(file.Findings) == 0 {
		if r.opts.Verbose {
			fmt.Fprintf(r.bw, "%s: %s %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Success.Render("valid"),
				r.styles.FormatContext(file.Context),
			)
		}
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Findings)))
	r.writeFindings(path, file.Findings, file.Content)

	if !file.Fixed {
		fmt.Fprintln(r.bw)
		return len(file.Findings)
	}

	switch {
	case file.Skipped:
		fmt.Fprintln(r.bw, "  "+r.styles.Warning.Render("changed on disk during processing, not written"))
	case file.Written:
		fmt.Fprintln(r.bw, "  "+r.styles.Success.Render("fixed"))
	default:
		fmt.Fprintln(r.bw, "  "+r.styles.Dim.Render("fixable (not written)"))
	}

	if len(file.Residual) > 0 {
		fmt.Fprintln(r.bw, "  "+r.styles.Failure.Render(
			english.Plural(len(file.Residual), "finding", "")+" require manual attention:"))
		r.writeFindings(path, file.Residual, file.FixedContent)
	}

	fmt.Fprintln(r.bw)
	return len(file.Residual)
}

func (r *TextReporter) writeFindings(path string, findings []finding.Finding, content []byte) {
	var lines []string
	if r.opts.ShowContext && content != nil {
		lines = lineclass.SplitLines(string(content))
	}

	for _, f := range findings {
		var source string
		if f.Line >= 1 && f.Line <= len(lines) {
			source = lines[f.Line-1]
		}
		fmt.Fprint(r.bw, r.styles.FormatFinding(path, f, source, r.opts.RuleFormat))
	}
}
