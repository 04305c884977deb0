package lint

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/lineclass"
)

// Parser turns Markdown source into a goldmark AST.
type Parser interface {
	Parse(content []byte) (ast.Node, error)
}

// Document is a parsed Markdown document shared by all rules of one run.
type Document struct {
	// Content is the raw source. Rules must not modify it.
	Content []byte

	// Lines are the source lines without terminators.
	Lines []string

	// Root is the goldmark AST, or nil when the document was not parsed.
	Root ast.Node

	// Context is the line-based structural model.
	Context *doccontext.Context

	lineStarts []int
}

// NewDocument builds a Document from content and an already parsed root.
func NewDocument(content []byte, root ast.Node) *Document {
	lines := lineclass.SplitLines(string(content))

	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Document{
		Content:    content,
		Lines:      lines,
		Root:       root,
		Context:    doccontext.BuildLines(lines),
		lineStarts: starts,
	}
}

// LineOf returns the 1-based line containing the byte offset.
func (d *Document) LineOf(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.SearchInts(d.lineStarts, offset+1)
}

// Column returns the 1-based rune column of the byte offset within its line.
func (d *Document) Column(offset int) int {
	line := d.LineOf(offset)
	start := d.lineStarts[line-1]
	if offset <= start || offset > len(d.Content) {
		return 1
	}
	return utf8.RuneCount(d.Content[start:offset]) + 1
}

// Line returns the 1-based line n, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.Lines) {
		return ""
	}
	return d.Lines[n-1]
}

// IsBlankLine reports whether line n is blank. Lines outside the document
// count as blank.
func (d *Document) IsBlankLine(n int) bool {
	return lineclass.IsBlank(d.Line(n))
}

// StartLine returns the first source line of a block node, or 0 if the
// node carries no position.
func (d *Document) StartLine(n ast.Node) int {
	if n == nil {
		return 0
	}
	if fcb, ok := n.(*ast.FencedCodeBlock); ok {
		if fcb.Info != nil {
			return d.LineOf(fcb.Info.Segment.Start)
		}
		if lines := fcb.Lines(); lines.Len() > 0 {
			// The opening fence is the line before the content.
			return d.LineOf(lines.At(0).Start) - 1
		}
		return 0
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return d.LineOf(lines.At(0).Start)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if line := d.StartLine(c); line > 0 {
			return line
		}
	}
	if t, ok := n.(*ast.Text); ok {
		return d.LineOf(t.Segment.Start)
	}
	return 0
}

// EndLine returns the last source line of a block node, or 0 if the node
// carries no position.
func (d *Document) EndLine(n ast.Node) int {
	if n == nil {
		return 0
	}
	if fcb, ok := n.(*ast.FencedCodeBlock); ok {
		return d.fencedEndLine(fcb)
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			seg := lines.At(lines.Len() - 1)
			return d.LineOf(max(seg.Start, seg.Stop-1))
		}
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if line := d.EndLine(c); line > 0 {
			return line
		}
	}
	if t, ok := n.(*ast.Text); ok {
		return d.LineOf(max(t.Segment.Start, t.Segment.Stop-1))
	}
	return 0
}

// fencedEndLine returns the closing fence line of a fenced code block, or
// its last content line when the block is unclosed.
func (d *Document) fencedEndLine(fcb *ast.FencedCodeBlock) int {
	last := d.StartLine(fcb)
	if lines := fcb.Lines(); lines.Len() > 0 {
		seg := lines.At(lines.Len() - 1)
		last = d.LineOf(max(seg.Start, seg.Stop-1))
	}
	if last == 0 {
		return 0
	}
	next := strings.TrimLeft(d.Line(last+1), " ")
	if strings.HasPrefix(next, "```") || strings.HasPrefix(next, "~~~") {
		return last + 1
	}
	return last
}

// HasTrailingNewline reports whether the content ends with '\n'.
func (d *Document) HasTrailingNewline() bool {
	return bytes.HasSuffix(d.Content, []byte("\n"))
}
