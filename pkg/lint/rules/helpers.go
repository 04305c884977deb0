package rules

import (
	"fmt"

	"github.com/yaklabco/mdfix/pkg/lint"
)

// fencedLines marks every line that belongs to a fenced code block,
// delimiters included. Index 0 is unused. An unclosed fence runs to the
// end of the document.
func fencedLines(doc *lint.Document) []bool {
	marks := make([]bool, len(doc.Lines)+1)
	for _, block := range doc.Context.CodeBlocks {
		end := block.EndLine
		if !block.Closed() {
			end = len(doc.Lines)
		}
		for line := block.StartLine; line <= end; line++ {
			marks[line] = true
		}
	}
	return marks
}

// expectedActual formats the markdownlint-style detail string.
func expectedActual(expected, actual any) string {
	return fmt.Sprintf("Expected: %v; Actual: %v", expected, actual)
}
