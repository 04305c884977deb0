package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/finding"
)

// RuleLabel names what produced f: the rule identifier in the requested
// format for rule-table findings, the kind name otherwise.
func RuleLabel(f finding.Finding, format config.RuleFormat) string {
	if f.Kind == finding.LintRule {
		return format.Label(f.RuleID, f.RuleName)
	}
	return f.Kind.String()
}

// FormatFinding renders one finding as
// "  path:line:col  severity  message  (rule)", followed by the source line
// and a caret when sourceLine is not empty, and the rule detail.
func (s *Styles) FormatFinding(path string, f finding.Finding, sourceLine string, format config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), f.Line, f.Column)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(f.Severity),
		s.Message.Render(f.Message()),
		s.RuleID.Render("("+RuleLabel(f, format)+")"),
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, f.Column))
	}

	if f.Detail != "" {
		builder.WriteString("    " + s.Detail.Render(f.Detail) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity.
func (s *Styles) FormatSeverity(sev finding.Severity) string {
	switch sev {
	case finding.SeverityError:
		return s.Error.Render("error")
	case finding.SeverityWarning:
		return s.Warning.Render("warning")
	case finding.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders the source line with a caret under column.
// Column 0 omits the caret.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader renders a file path with its finding count.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(" (" + english.Plural(count, "finding", "") + ")")
	}
	return header
}

// FormatContext renders document counts, e.g.
// "4 headings, 2 list items, 1 code block, 0 links".
func (s *Styles) FormatContext(sum doccontext.Summary) string {
	return s.Dim.Render(strings.Join([]string{
		english.Plural(sum.Headings, "heading", ""),
		english.Plural(sum.ListItems, "list item", ""),
		english.Plural(sum.CodeBlocks, "code block", ""),
		english.Plural(sum.Links, "link", ""),
	}, ", "))
}
