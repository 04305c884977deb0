package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// JSONVersion is the schema version of JSONOutput.
const JSONVersion = "1"

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file's result.
type JSONFileResult struct {
	Path     string             `json:"path"`
	Valid    bool               `json:"valid"`
	Findings []JSONFinding      `json:"findings"`
	Context  doccontext.Summary `json:"context"`
	Fixed    bool               `json:"fixed,omitempty"`
	Written  bool               `json:"written,omitempty"`
	Skipped  bool               `json:"skipped,omitempty"`
	Residual []JSONFinding      `json:"residual,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// JSONFinding is one finding. Wire holds the "<message> [line:col]" form.
type JSONFinding struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	RuleID   string `json:"ruleId,omitempty"`
	RuleName string `json:"ruleName,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Fixable  bool   `json:"fixable"`
	Wire     string `json:"wire"`
}

// JSONSummary holds aggregate statistics.
type JSONSummary struct {
	FilesChecked      int            `json:"filesChecked"`
	FilesWithFindings int            `json:"filesWithFindings"`
	FilesFixed        int            `json:"filesFixed"`
	FilesWritten      int            `json:"filesWritten"`
	FilesSkipped      int            `json:"filesSkipped"`
	FilesErrored      int            `json:"filesErrored"`
	Findings          int            `json:"findings"`
	Remaining         int            `json:"remaining"`
	BySeverity        map[string]int `json:"bySeverity"`
	Bytes             int64          `json:"bytes"`
}

// JSONReporter writes results as one indented JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.Remaining, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:      stats.FilesProcessed,
		FilesWithFindings: stats.FilesWithFindings,
		FilesFixed:        stats.FilesFixed,
		FilesWritten:      stats.FilesWritten,
		FilesSkipped:      stats.FilesSkipped,
		FilesErrored:      stats.FilesErrored,
		Findings:          stats.Findings,
		Remaining:         stats.Residual,
		BySeverity:        make(map[string]int, len(stats.FindingsBySeverity)),
		Bytes:             stats.Bytes,
	}
	for sev, n := range stats.FindingsBySeverity {
		output.Summary.BySeverity[string(sev)] = n
	}

	for _, file := range result.Files {
		fr := JSONFileResult{
			Path:     r.opts.displayPath(file.Path),
			Findings: jsonFindings(file.Findings),
			Context:  file.Context,
			Fixed:    file.Fixed,
			Written:  file.Written,
			Skipped:  file.Skipped,
		}
		if file.Error != nil {
			fr.Error = file.Error.Error()
		} else {
			fr.Valid = len(file.Remaining()) == 0
		}
		if file.Fixed {
			fr.Residual = jsonFindings(file.Residual)
		}
		output.Files = append(output.Files, fr)
	}

	return output
}

func jsonFindings(findings []finding.Finding) []JSONFinding {
	out := make([]JSONFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, JSONFinding{
			Kind:     f.Kind.String(),
			Severity: string(f.Severity),
			Line:     f.Line,
			Column:   f.Column,
			Message:  f.Message(),
			RuleID:   f.RuleID,
			RuleName: f.RuleName,
			Detail:   f.Detail,
			Fixable:  f.Kind.Fixable(),
			Wire:     f.String(),
		})
	}
	return out
}
