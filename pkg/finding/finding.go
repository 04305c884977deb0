// Package finding defines the results produced by document validation.
package finding

import (
	"fmt"
	"slices"
)

// Kind identifies what produced a Finding.
type Kind int

const (
	// LintRule is a finding reported by a rule from the configurable rule
	// table.
	LintRule Kind = iota
	// EmptyDocument means the input is empty or whitespace only.
	EmptyDocument
	// SkippedHeadingLevel means a heading is more than one level deeper
	// than its predecessor.
	SkippedHeadingLevel
	// MultipleTopLevelHeadings means a second level-1 heading was found.
	MultipleTopLevelHeadings
	// DuplicateHeading means a heading text occurs more than once.
	DuplicateHeading
	// InconsistentListMarkers means a list item marker differs from the
	// previous list item's marker.
	InconsistentListMarkers
	// LineTooLong means a physical line exceeds the length limit.
	LineTooLong
)

var kindNames = map[Kind]string{
	LintRule:                 "lint-rule",
	EmptyDocument:            "empty-document",
	SkippedHeadingLevel:      "skipped-heading-level",
	MultipleTopLevelHeadings: "multiple-top-level-headings",
	DuplicateHeading:         "duplicate-heading",
	InconsistentListMarkers:  "inconsistent-list-markers",
	LineTooLong:              "line-too-long",
}

// String returns the kebab-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Fixable reports whether one autofix pass is expected to resolve findings
// of this kind.
func (k Kind) Fixable() bool {
	return k == SkippedHeadingLevel || k == InconsistentListMarkers
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Severity is how serious a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one validation result.
type Finding struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	// Column is the 1-based column for line-style findings and 0 for
	// structural findings.
	Column int `json:"column"`

	// Expected is the level that should have been used (SkippedHeadingLevel)
	// or the length limit (LineTooLong).
	Expected int `json:"expected,omitempty"`
	// Heading is the normalized heading text (DuplicateHeading).
	Heading string `json:"heading,omitempty"`
	// FirstLine is where a duplicated heading first appeared.
	FirstLine int `json:"firstLine,omitempty"`

	// RuleID, RuleName and Description identify the rule behind a LintRule
	// finding.
	RuleID      string `json:"ruleId,omitempty"`
	RuleName    string `json:"ruleName,omitempty"`
	Description string `json:"description,omitempty"`
	// Detail is optional extra context from the rule.
	Detail string `json:"detail,omitempty"`
}

// Message returns the human-readable message without position.
func (f Finding) Message() string {
	switch f.Kind {
	case EmptyDocument:
		return "Document is empty or contains only whitespace"
	case SkippedHeadingLevel:
		return fmt.Sprintf("Skipped heading level %d", f.Expected)
	case MultipleTopLevelHeadings:
		return "Multiple top-level headings in the same document"
	case DuplicateHeading:
		return fmt.Sprintf("Duplicate heading %q first used at line %d", f.Heading, f.FirstLine)
	case InconsistentListMarkers:
		return "Inconsistent list markers"
	case LineTooLong:
		return fmt.Sprintf("Line length exceeds %d characters", f.Expected)
	default:
		return f.Description
	}
}

// String renders the finding in the "<message> [<line>:<column>]" wire
// format.
func (f Finding) String() string {
	return fmt.Sprintf("%s [%d:%d]", f.Message(), f.Line, f.Column)
}

// Empty returns the finding for an empty or whitespace-only document.
func Empty() Finding {
	return Finding{Kind: EmptyDocument, Severity: SeverityError, Line: 1}
}

// SkippedLevel returns a SkippedHeadingLevel finding.
func SkippedLevel(line, expected int) Finding {
	return Finding{Kind: SkippedHeadingLevel, Severity: SeverityError, Line: line, Expected: expected}
}

// MultipleTopLevel returns a MultipleTopLevelHeadings finding.
func MultipleTopLevel(line int) Finding {
	return Finding{Kind: MultipleTopLevelHeadings, Severity: SeverityError, Line: line}
}

// Duplicate returns a DuplicateHeading finding located at the first
// occurrence of the heading.
func Duplicate(heading string, firstLine int) Finding {
	return Finding{
		Kind:      DuplicateHeading,
		Severity:  SeverityError,
		Line:      firstLine,
		Heading:   heading,
		FirstLine: firstLine,
	}
}

// InconsistentMarkers returns an InconsistentListMarkers finding.
func InconsistentMarkers(line int) Finding {
	return Finding{Kind: InconsistentListMarkers, Severity: SeverityError, Line: line}
}

// TooLong returns a LineTooLong finding.
func TooLong(line, limit int) Finding {
	return Finding{Kind: LineTooLong, Severity: SeverityError, Line: line, Expected: limit}
}

// Strings renders each finding in wire format.
func Strings(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.String()
	}
	return out
}

// CountKind returns how many findings have kind k.
func CountKind(findings []Finding, k Kind) int {
	n := 0
	for _, f := range findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Count returns the number of error, warning and info findings.
func Count(findings []Finding) (errs, warnings, infos int) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		default:
			errs++
		}
	}
	return errs, warnings, infos
}

// SortByPosition returns a copy of findings ordered by line then column.
// The relative order of findings on the same position is preserved.
func SortByPosition(findings []Finding) []Finding {
	sorted := slices.Clone(findings)
	slices.SortStableFunc(sorted, func(a, b Finding) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		return a.Column - b.Column
	})
	return sorted
}
