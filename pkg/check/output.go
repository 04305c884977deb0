package check

import (
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/stream"
)

// OutputResult is the result of ValidateOutput.
type OutputResult struct {
	Valid bool `json:"valid"`
	// Content is the chunk for partial output, and the complete (possibly
	// fixed) document for the final chunk.
	Content  string            `json:"content"`
	Findings []finding.Finding `json:"findings"`
}

// ValidateOutput buffers chunk under id in store. Partial chunks are
// accepted as valid without checking. On the final chunk the buffered
// document is validated; when invalid it is fixed once and re-validated,
// and the fixed text is returned together with any remaining findings.
// The buffer for id is released on the final chunk; callers abandoning a
// stream early call store.Discard.
func (c *Checker) ValidateOutput(store *stream.Store, id, chunk string, complete bool) OutputResult {
	store.Append(id, chunk)
	if !complete {
		return OutputResult{Valid: true, Content: chunk}
	}

	full, _ := store.Take(id)

	report := c.Check(full)
	if report.Valid {
		return OutputResult{Valid: true, Content: full}
	}

	fixed := c.fixer.Fix(full)
	residual := c.Check(fixed)

	return OutputResult{
		Valid:    residual.Valid,
		Content:  fixed,
		Findings: residual.Findings,
	}
}
