package runner

import (
	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/fix"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	Path string

	// Content is the document as read.
	Content []byte

	// Findings are the findings of the content as read.
	Findings []finding.Finding

	// Context summarizes the content as read.
	Context doccontext.Summary

	// Fixed is set when a fix was computed and changed the content.
	Fixed bool

	// FixedContent is the fixed document when Fixed is set.
	FixedContent []byte

	// Residual are the findings left after fixing.
	Residual []finding.Finding

	// Diff is the unified diff of the fix, when one was computed.
	Diff *fix.Diff

	// Written is set when the fixed content was written back.
	Written bool

	// Skipped is set when the file changed on disk during processing and
	// was left alone.
	Skipped bool

	// Bytes is the size of the content as read.
	Bytes int

	// Error is set if the file could not be processed.
	Error error
}

// Remaining returns the findings that still apply: the residual findings
// when a fix was computed, otherwise the original findings.
func (o FileOutcome) Remaining() []finding.Finding {
	if o.Fixed {
		return o.Residual
	}
	return o.Findings
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	// FilesWithFindings counts files whose content as read had findings.
	FilesWithFindings int

	// FilesFixed counts files whose content a fix changed.
	FilesFixed int

	// FilesWritten counts files written back.
	FilesWritten int

	// Findings is the total over the content as read.
	Findings int

	// Residual is the total of Remaining findings.
	Residual int

	// FindingsBySeverity counts Remaining findings by severity.
	FindingsBySeverity map[finding.Severity]int

	// Bytes is the total size read.
	Bytes int64
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any file still has findings.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Residual > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// NewResult aggregates outcomes produced outside Run, such as a document
// read from stdin.
func NewResult(outcomes ...FileOutcome) *Result {
	result := newResult(len(outcomes))
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func newResult(capacity int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, capacity),
		Stats: Stats{FindingsBySeverity: make(map[finding.Severity]int)},
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Bytes += int64(outcome.Bytes)

	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Fixed {
		r.Stats.FilesFixed++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if len(outcome.Findings) > 0 {
		r.Stats.FilesWithFindings++
	}
	r.Stats.Findings += len(outcome.Findings)

	remaining := outcome.Remaining()
	r.Stats.Residual += len(remaining)
	for _, f := range remaining {
		r.Stats.FindingsBySeverity[f.Severity]++
	}
}
