// Package lineclass classifies single lines of Markdown text.
//
// Classification is stateless: each function looks at one line and reports
// what it is. Fence state, heading depth and the like are tracked by the
// callers that scan whole documents (see package doccontext).
package lineclass

import (
	"regexp"
	"strings"
)

// Kind is the structural class of a line.
type Kind int

const (
	// Text is any line that matches no other class.
	Text Kind = iota
	// Heading is an ATX heading line.
	Heading
	// ListItem is a bulleted list item line.
	ListItem
	// Fence is a fenced code block delimiter.
	Fence
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case ListItem:
		return "list-item"
	case Fence:
		return "fence"
	default:
		return "text"
	}
}

// FenceMarker is the delimiter that opens and closes a fenced code block.
const FenceMarker = "```"

var (
	headingPattern  = regexp.MustCompile(`^(#+)\s+(.+)$`)
	listItemPattern = regexp.MustCompile(`^(\s*)([*+-])\s+(.+)$`)
	linkPattern     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	fencePattern    = regexp.MustCompile("^" + FenceMarker + `(\w*)$`)
)

// kinds is evaluated in order; the first matcher that accepts the line wins.
var kinds = Table[Kind]{
	{Tag: Fence, Match: IsFence},
	{Tag: Heading, Match: func(line string) bool { _, _, ok := ParseHeading(line); return ok }},
	{Tag: ListItem, Match: func(line string) bool { _, ok := ParseListItem(line); return ok }},
}

// Classify returns the structural kind of line. Links are orthogonal to
// the kind and are extracted separately with Links.
func Classify(line string) Kind {
	if kind, ok := kinds.First(line); ok {
		return kind
	}
	return Text
}

// ParseHeading returns the level and text of an ATX heading line.
func ParseHeading(line string) (level int, text string, ok bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// Item is a list item recognized on a single line.
type Item struct {
	// Indent is the leading whitespace before the marker.
	Indent string
	// Marker is one of '-', '*' or '+'.
	Marker byte
	// Text is everything after the marker and its trailing whitespace.
	Text string
}

// IndentLevel is the nesting depth derived from the leading whitespace, two
// columns per level.
func (it Item) IndentLevel() int {
	return len(it.Indent) / 2
}

// ParseListItem recognizes a bulleted list item. Thematic breaks such as
// "* * *" or "- - -" are not list items.
func ParseListItem(line string) (Item, bool) {
	m := listItemPattern.FindStringSubmatch(line)
	if m == nil || IsThematicBreak(line) {
		return Item{}, false
	}
	return Item{Indent: m[1], Marker: m[2][0], Text: m[3]}, true
}

// IsThematicBreak reports whether line is a run of three or more identical
// '-', '*' or '_' characters, optionally separated by spaces or tabs.
func IsThematicBreak(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	mark := trimmed[0]
	if mark != '-' && mark != '*' && mark != '_' {
		return false
	}
	count := 0
	for i := range len(trimmed) {
		switch trimmed[i] {
		case mark:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

// IsFence reports whether line opens or closes a fenced code block: three
// backticks followed by at most one word. Inline code such as
// "```a``` b" is text.
func IsFence(line string) bool {
	return fencePattern.MatchString(line)
}

// FenceLanguage returns the language declared on a fence line, or "" when
// none is given or line is not a fence.
func FenceLanguage(line string) string {
	m := fencePattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsBlank reports whether line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Link is an inline link occurrence.
type Link struct {
	Text string
	URL  string
	// Column is the 1-based byte offset of the opening bracket.
	Column int
}

// Links returns every non-overlapping inline link in line, left to right.
func Links(line string) []Link {
	idx := linkPattern.FindAllStringSubmatchIndex(line, -1)
	if len(idx) == 0 {
		return nil
	}

	links := make([]Link, 0, len(idx))
	for _, m := range idx {
		links = append(links, Link{
			Text:   line[m[2]:m[3]],
			URL:    line[m[4]:m[5]],
			Column: m[0] + 1,
		})
	}
	return links
}

// SplitLines splits text into lines on '\n' after normalizing CRLF line
// endings. A trailing newline yields a final empty line, so the line count
// always equals the number of newlines plus one.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
