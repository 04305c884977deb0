package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// DiffReporter writes the computed fixes as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter. The count returned is the number of findings
// still applying, like the other reporters.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions, remaining int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		remaining += len(file.Remaining())
		if !file.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Diff.Additions
		deletions += file.Diff.Deletions
		r.writeDiff(path, file.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}
	return remaining, nil
}

func (r *DiffReporter) writeDiff(path string, diff *fix.Diff) {
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	inHunk := false
	for line := range strings.SplitSeq(diff.String(), "\n") {
		if strings.HasPrefix(line, "@@") {
			inHunk = true
		}
		if !inHunk || line == "" {
			continue
		}
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
}

func (r *DiffReporter) writeDiffLine(line string) {
	var styled string
	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}
	fmt.Fprintln(r.out, styled)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{english.Plural(files, "file", "") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(english.Plural(additions, "insertion", "")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(english.Plural(deletions, "deletion", "")+"(-)"))
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
