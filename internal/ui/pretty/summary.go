package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine renders run statistics on one line, e.g.
// "3 findings (2 errors, 1 warning) in 2 files, 1 file fixed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%s checked, %s)",
		english.Plural(stats.FilesProcessed, "file", ""),
		humanize.Bytes(uint64(max(stats.Bytes, 0))),
	))

	var parts []string
	if stats.Residual == 0 {
		parts = append(parts, s.Success.Render("No findings")+checked)
	} else {
		main := english.Plural(stats.Residual, "finding", "")
		if breakdown := s.severityBreakdown(stats); breakdown != "" {
			main += " (" + breakdown + ")"
		}
		parts = append(parts, main+" in "+english.Plural(stats.FilesWithFindings, "file", "")+checked)
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(english.Plural(stats.FilesWritten, "file", "")+" fixed"))
	} else if stats.FilesFixed > 0 {
		parts = append(parts, s.Success.Render(english.Plural(stats.FilesFixed, "file", "")+" fixable"))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(english.Plural(stats.FilesSkipped, "file", "")+" changed on disk, skipped"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(english.Plural(stats.FilesErrored, "file", "")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(stats runner.Stats) string {
	var parts []string
	if n := stats.FindingsBySeverity[finding.SeverityError]; n > 0 {
		parts = append(parts, s.Error.Render(english.Plural(n, "error", "")))
	}
	if n := stats.FindingsBySeverity[finding.SeverityWarning]; n > 0 {
		parts = append(parts, s.Warning.Render(english.Plural(n, "warning", "")))
	}
	if n := stats.FindingsBySeverity[finding.SeverityInfo]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return strings.Join(parts, ", ")
}

// FormatSummary renders run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(humanize.Comma(int64(stats.FilesProcessed))))
	row("Bytes read", s.SummaryValue.Render(humanize.Bytes(uint64(max(stats.Bytes, 0)))))
	if stats.FilesWithFindings > 0 {
		row("Files with findings", s.Failure.Render(humanize.Comma(int64(stats.FilesWithFindings))))
	}
	if stats.FilesWritten > 0 {
		row("Files fixed", s.Success.Render(humanize.Comma(int64(stats.FilesWritten))))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(humanize.Comma(int64(stats.FilesSkipped))))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Error.Render(humanize.Comma(int64(stats.FilesErrored))))
	}
	row("Findings", s.SummaryValue.Render(humanize.Comma(int64(stats.Findings))))
	if stats.Residual != stats.Findings {
		row("Remaining", s.SummaryValue.Render(humanize.Comma(int64(stats.Residual))))
	}

	builder.WriteString("\n")
	switch {
	case stats.FindingsBySeverity[finding.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.Residual > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
