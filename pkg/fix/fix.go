// Package fix rewrites Markdown documents so they satisfy the structural
// checks.
//
// Fixing runs in two passes. The first builds a document context from the
// original text. The second walks the original lines once and appends zero
// or more lines per input line to a fresh output buffer, consulting the
// context for fenced code contents. The input slice is never modified.
package fix

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/langdetect"
	"github.com/yaklabco/mdfix/pkg/lineclass"
)

// DefaultTitle is the heading synthesized for documents without one.
const DefaultTitle = "Document"

// regexSpace is the set of characters matched by \s on a single line.
const regexSpace = " \t\f\r"

// headingPunctuation lists the characters stripped from the end of a
// heading, one at a time.
const headingPunctuation = ".,:;!"

// looseHeading accepts headings missing the space after the '#' run.
// Shebang-like "#!" lines are not headings.
var looseHeading = regexp.MustCompile(`^(#+)([^\s#!].*)$`)

// InferFunc guesses the language of a code block from its content and the
// lines around it.
type InferFunc func(content string, surrounding []string) string

// Fixer rewrites documents. The zero value is not usable; use New.
type Fixer struct {
	infer InferFunc
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithInfer replaces the language inference used for unlabeled fences.
func WithInfer(fn InferFunc) Option {
	return func(f *Fixer) {
		if fn != nil {
			f.infer = fn
		}
	}
}

// New returns a Fixer.
func New(opts ...Option) *Fixer {
	f := &Fixer{infer: langdetect.Infer}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply fixes text with a default Fixer.
func Apply(text string) string {
	return New().Fix(text)
}

// Fix returns the rewritten document. It never fails: any input, including
// the empty string and documents with unterminated fences, yields a
// document ending in exactly one newline.
func (f *Fixer) Fix(text string) string {
	lines := lineclass.SplitLines(text)
	ctx := doccontext.BuildHeadings(lines)

	w := &writer{}

	// A synthesized H1 counts as the first heading seen.
	synthesize := !startsWithHeading(lines)
	if synthesize {
		w.lastLevel = 1
	}

	inFence := false
	for i, line := range lines {
		switch {
		case inFence:
			w.emitRaw(line)
			if lineclass.IsFence(line) {
				inFence = false
				w.pendingBlank = true
			}

		case lineclass.IsFence(line):
			w.endList()
			if lineclass.FenceLanguage(line) == "" {
				line = lineclass.FenceMarker + f.fenceLanguage(lines, i)
			}
			w.blankBefore()
			w.emit(line)
			inFence = true

		case lineclass.IsBlank(line):
			w.blank()

		default:
			f.fixLine(w, line)
		}
	}

	if synthesize {
		w.prepend("# "+title(ctx), "")
	}

	return w.String()
}

func (f *Fixer) fixLine(w *writer, line string) {
	if level, text, ok := parseHeading(line); ok {
		w.endList()
		suggested := suggestLevel(level, w.lastLevel)
		w.blankBefore()
		w.emit(strings.Repeat("#", suggested) + " " + text)
		w.lastLevel = suggested
		w.pendingBlank = true
		return
	}

	if item, ok := lineclass.ParseListItem(line); ok {
		if !w.inList {
			w.blankBefore()
			w.inList = true
		}
		w.emit(item.Indent + "- " + item.Text)
		return
	}

	if w.inList && (line[0] == ' ' || line[0] == '\t') {
		// Indented continuation of the previous item.
		w.emit(line)
		return
	}

	if _, _, ok := lineclass.ParseHeading(line); ok {
		// A '#' run followed only by whitespace.
		line = strings.TrimRight(line, regexSpace)
	}

	w.endList()
	w.emit(line)
}

// fenceLanguage infers the language for the unlabeled fence at index i. An
// unterminated block runs to the end of the document.
func (f *Fixer) fenceLanguage(lines []string, i int) string {
	body := lines[i+1:]
	end := len(lines) - 1
	for j, line := range body {
		if lineclass.IsFence(line) {
			body = body[:j]
			end = i + 1 + j
			break
		}
	}

	var content strings.Builder
	for _, line := range body {
		content.WriteString(line)
		content.WriteByte('\n')
	}
	return f.infer(content.String(), langdetect.Surrounding(lines, i, end))
}

// parseHeading recognizes a heading line, tolerating a missing space after
// the '#' run. The returned text is trimmed with one trailing punctuation
// character removed.
func parseHeading(line string) (int, string, bool) {
	level, text, ok := lineclass.ParseHeading(line)
	if !ok {
		m := looseHeading.FindStringSubmatch(line)
		if m == nil {
			return 0, "", false
		}
		level, text = len(m[1]), m[2]
	}

	text = strings.Trim(text, regexSpace)
	if text == "" {
		return 0, "", false
	}
	return level, stripPunctuation(text), true
}

// suggestLevel keeps level 1, forces the first heading to level 1, and
// otherwise clamps the level to one deeper than the previous heading.
func suggestLevel(level, lastLevel int) int {
	if level == 1 || lastLevel == 0 {
		return 1
	}
	return min(level, lastLevel+1)
}

func stripPunctuation(text string) string {
	if len(text) < 2 {
		return text
	}
	if strings.IndexByte(headingPunctuation, text[len(text)-1]) >= 0 {
		return strings.TrimRight(text[:len(text)-1], " \t")
	}
	return text
}

func startsWithHeading(lines []string) bool {
	for _, line := range lines {
		if lineclass.IsBlank(line) {
			continue
		}
		_, _, ok := parseHeading(line)
		return ok
	}
	return false
}

func title(ctx *doccontext.Context) string {
	for _, h := range ctx.Headings {
		if text := strings.TrimSpace(h.RawText); text != "" {
			return stripPunctuation(text)
		}
	}
	return DefaultTitle
}

// writer is the pass-2 output buffer.
type writer struct {
	lines []string
	// pendingBlank requests a blank line before the next non-blank line.
	pendingBlank bool
	inList       bool
	lastLevel    int
}

func (w *writer) last() (string, bool) {
	if len(w.lines) == 0 {
		return "", false
	}
	return w.lines[len(w.lines)-1], true
}

// blankBefore ensures the next line is preceded by a blank line, unless it
// is the first line of the document.
func (w *writer) blankBefore() {
	if last, ok := w.last(); ok && !lineclass.IsBlank(last) {
		w.lines = append(w.lines, "")
	}
}

// blank appends a blank line, collapsing runs and dropping leading blanks.
func (w *writer) blank() {
	w.inList = false
	w.pendingBlank = false
	if last, ok := w.last(); ok && !lineclass.IsBlank(last) {
		w.lines = append(w.lines, "")
	}
}

func (w *writer) emit(line string) {
	if w.pendingBlank {
		w.blankBefore()
		w.pendingBlank = false
	}
	w.lines = append(w.lines, line)
}

// emitRaw appends fenced content verbatim.
func (w *writer) emitRaw(line string) {
	w.lines = append(w.lines, line)
}

func (w *writer) endList() {
	if w.inList {
		w.inList = false
		w.pendingBlank = true
	}
}

func (w *writer) prepend(lines ...string) {
	w.lines = append(lines, w.lines...)
}

// String joins the buffer, trims trailing whitespace and appends exactly
// one newline.
func (w *writer) String() string {
	out := strings.TrimRightFunc(strings.Join(w.lines, "\n"), unicode.IsSpace)
	if out == "" {
		return "# " + DefaultTitle + "\n"
	}
	return out + "\n"
}
