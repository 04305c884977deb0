// Package validate evaluates structural invariants over a document context.
package validate

import (
	"unicode/utf8"

	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/finding"
)

// DefaultMaxLineLength is the line length limit used when none is set.
const DefaultMaxLineLength = 120

// Structure checks heading hierarchy, duplicate headings and list marker
// consistency, in that order.
func Structure(ctx *doccontext.Context) []finding.Finding {
	var findings []finding.Finding
	findings = append(findings, HeadingHierarchy(ctx)...)
	findings = append(findings, DuplicateHeadings(ctx)...)
	findings = append(findings, ListMarkers(ctx)...)
	return findings
}

// HeadingHierarchy reports every repeated level-1 heading and every heading
// more than one level deeper than the heading before it. The first heading
// is compared against level 1. Decreasing levels are always allowed.
func HeadingHierarchy(ctx *doccontext.Context) []finding.Finding {
	var findings []finding.Finding

	lastLevel := 1
	seenTop := false
	for _, h := range ctx.Headings {
		if h.Level == 1 {
			if seenTop {
				findings = append(findings, finding.MultipleTopLevel(h.Line))
			}
			seenTop = true
		}
		if h.Level > lastLevel+1 {
			findings = append(findings, finding.SkippedLevel(h.Line, lastLevel+1))
		}
		lastLevel = h.Level
	}

	return findings
}

// DuplicateHeadings reports one finding per heading text that occurs more
// than once, in order of first appearance.
func DuplicateHeadings(ctx *doccontext.Context) []finding.Finding {
	dups := ctx.Duplicates()
	if len(dups) == 0 {
		return nil
	}

	findings := make([]finding.Finding, 0, len(dups))
	for _, text := range dups {
		occ, _ := ctx.Occurrence(text)
		findings = append(findings, finding.Duplicate(text, occ.FirstLine))
	}
	return findings
}

// ListMarkers reports each list item whose marker differs from the previous
// list item anywhere in the document. Items are compared across
// intervening content.
func ListMarkers(ctx *doccontext.Context) []finding.Finding {
	var (
		findings []finding.Finding
		last     byte
	)
	for _, item := range ctx.ListItems {
		if last != 0 && item.Marker != last {
			findings = append(findings, finding.InconsistentMarkers(item.Line))
		}
		last = item.Marker
	}
	return findings
}

// LineLength reports every line longer than limit characters, fenced or
// not. A limit of zero or less uses DefaultMaxLineLength.
func LineLength(lines []string, limit int) []finding.Finding {
	if limit <= 0 {
		limit = DefaultMaxLineLength
	}

	var findings []finding.Finding
	for i, line := range lines {
		if len(line) > limit && utf8.RuneCountInString(line) > limit {
			findings = append(findings, finding.TooLong(i+1, limit))
		}
	}
	return findings
}
