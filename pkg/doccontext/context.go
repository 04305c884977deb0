// Package doccontext builds the structural model of a Markdown document.
//
// A Context is produced by one forward scan over the document lines and is
// read-only afterwards. It records headings, list items, fenced code blocks
// and inline links in document order, plus a duplicate-heading index and the
// level of the most recently seen heading.
package doccontext

import (
	"strings"

	"github.com/yaklabco/mdfix/pkg/lineclass"
)

// DefaultFenceLanguage is recorded for a fence that declares no language.
const DefaultFenceLanguage = "text"

// Heading is an ATX heading.
type Heading struct {
	Level int
	// RawText is the heading text as written.
	RawText string
	// NormalizedText is the lowercased, trimmed text used as the
	// de-duplication key.
	NormalizedText string
	Line           int
}

// Occurrence counts how often a normalized heading text appears.
type Occurrence struct {
	Count     int
	FirstLine int
}

// ListItem is a bulleted list item.
type ListItem struct {
	Marker      byte
	Text        string
	Line        int
	IndentLevel int
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	// Language is the declared language, or DefaultFenceLanguage when the
	// fence declares none.
	Language string
	// Declared reports whether the opening fence named a language.
	Declared bool
	// Content holds the lines between the fences, each followed by '\n'.
	Content   string
	StartLine int
	// EndLine is the closing fence line, or 0 if the fence is never closed.
	EndLine int
}

// Closed reports whether the block has a closing fence.
func (b CodeBlock) Closed() bool {
	return b.EndLine > 0
}

// Link is an inline link.
type Link struct {
	Text   string
	URL    string
	Line   int
	Column int
}

// Context is the structural model of one document.
type Context struct {
	Headings   []Heading
	ListItems  []ListItem
	CodeBlocks []CodeBlock
	Links      []Link
	// CurrentLevel is the level of the most recently seen heading, 0 if none.
	CurrentLevel int

	occurrences map[string]*Occurrence
	order       []string
}

// New returns an empty Context.
func New() *Context {
	return &Context{occurrences: make(map[string]*Occurrence)}
}

// Build scans text once and returns its Context. Headings and list items
// inside fenced code are not recorded, and neither are links. A fence that
// is never closed extends to the end of the document.
func Build(text string) *Context {
	return BuildLines(lineclass.SplitLines(text))
}

// BuildLines is Build over pre-split lines.
func BuildLines(lines []string) *Context {
	ctx := New()

	var (
		inFence bool
		content strings.Builder
	)

	for i, line := range lines {
		lineNum := i + 1

		if lineclass.IsFence(line) {
			if !inFence {
				inFence = true
				content.Reset()
				ctx.openCodeBlock(lineclass.FenceLanguage(line), lineNum)
			} else {
				inFence = false
				ctx.sealCodeBlock(content.String(), lineNum)
			}
			continue
		}

		if inFence {
			content.WriteString(line)
			content.WriteByte('\n')
			continue
		}

		if level, text, ok := lineclass.ParseHeading(line); ok {
			ctx.AddHeading(level, text, lineNum)
		}
		if item, ok := lineclass.ParseListItem(line); ok {
			ctx.ListItems = append(ctx.ListItems, ListItem{
				Marker:      item.Marker,
				Text:        item.Text,
				Line:        lineNum,
				IndentLevel: item.IndentLevel(),
			})
		}
		for _, l := range lineclass.Links(line) {
			ctx.Links = append(ctx.Links, Link{Text: l.Text, URL: l.URL, Line: lineNum, Column: l.Column})
		}
	}

	if inFence {
		ctx.sealCodeBlock(content.String(), 0)
	}

	return ctx
}

// BuildHeadings records only the headings of lines, skipping fenced
// content. It is the cheap first pass used ahead of a rewrite.
func BuildHeadings(lines []string) *Context {
	ctx := New()
	inFence := false
	for i, line := range lines {
		if lineclass.IsFence(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if level, text, ok := lineclass.ParseHeading(line); ok {
			ctx.AddHeading(level, text, i+1)
		}
	}
	return ctx
}

// AddHeading appends a heading and updates the occurrence index and the
// current level.
func (c *Context) AddHeading(level int, text string, line int) {
	key := strings.ToLower(strings.TrimSpace(text))
	if occ, ok := c.occurrences[key]; ok {
		occ.Count++
	} else {
		c.occurrences[key] = &Occurrence{Count: 1, FirstLine: line}
		c.order = append(c.order, key)
	}

	c.Headings = append(c.Headings, Heading{
		Level:          level,
		RawText:        text,
		NormalizedText: key,
		Line:           line,
	})
	c.CurrentLevel = level
}

func (c *Context) openCodeBlock(lang string, line int) {
	block := CodeBlock{Language: lang, Declared: lang != "", StartLine: line}
	if lang == "" {
		block.Language = DefaultFenceLanguage
	}
	c.CodeBlocks = append(c.CodeBlocks, block)
}

func (c *Context) sealCodeBlock(content string, endLine int) {
	last := &c.CodeBlocks[len(c.CodeBlocks)-1]
	last.Content = content
	last.EndLine = endLine
}

// Occurrence returns the index entry for a normalized heading text.
func (c *Context) Occurrence(normalized string) (Occurrence, bool) {
	occ, ok := c.occurrences[normalized]
	if !ok {
		return Occurrence{}, false
	}
	return *occ, true
}

// Duplicates returns the normalized heading texts seen more than once, in
// order of first appearance.
func (c *Context) Duplicates() []string {
	var dups []string
	for _, key := range c.order {
		if c.occurrences[key].Count > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}

// CodeBlockAt returns the code block opened on line.
func (c *Context) CodeBlockAt(line int) (CodeBlock, bool) {
	for _, b := range c.CodeBlocks {
		if b.StartLine == line {
			return b, true
		}
	}
	return CodeBlock{}, false
}

// Summary is a count-only snapshot of a Context.
type Summary struct {
	Headings     int `json:"headings"`
	ListItems    int `json:"lists"`
	CodeBlocks   int `json:"codeBlocks"`
	Links        int `json:"links"`
	CurrentLevel int `json:"currentLevel"`
}

// Summary returns the counts of c. A nil Context yields a zero Summary.
func (c *Context) Summary() Summary {
	if c == nil {
		return Summary{}
	}
	return Summary{
		Headings:     len(c.Headings),
		ListItems:    len(c.ListItems),
		CodeBlocks:   len(c.CodeBlocks),
		Links:        len(c.Links),
		CurrentLevel: c.CurrentLevel,
	}
}
