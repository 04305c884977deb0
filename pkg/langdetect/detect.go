// Package langdetect infers the language of unlabeled fenced code blocks.
//
// Inference evaluates an ordered table of (language, pattern) pairs against
// the block content and returns the first match. When the content matches
// nothing, the lines around the block are searched for a language name.
// A shebang naming one of the table's languages is the last resort before
// falling back to "text".
package langdetect

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/mdfix/pkg/lineclass"
)

// Text is returned when no language can be inferred.
const Text = "text"

// ContextLines is how many lines before and after a block are considered
// when its content is inconclusive.
const ContextLines = 3

// Patterns is the ordered inference table. Order is significant: the first
// language whose pattern matches wins.
var Patterns = lineclass.Table[string]{
	lineclass.Pattern("javascript", `\b(const|let|var|function|=>|async|await|import|export)\b`),
	lineclass.Pattern("typescript", `\b(interface|type|enum|namespace|readonly|private|public|protected)\b`),
	lineclass.Pattern("python", `\b(def|class|import|from|if __name__|print|lambda)\b`),
	lineclass.Pattern("html", `(?i)</?[a-z][\s\S]*>`),
	lineclass.Pattern("css", `[.#][\w-]+\s*\{|@media|@import`),
	lineclass.Pattern("json", `^\s*[{\[]`),
	lineclass.Pattern("yaml", `^\s*[-?:]\s|^\s*[A-Za-z0-9_-]+:`),
	lineclass.Pattern("bash", `\b(echo|export|source|sudo|apt|npm|yarn|pnpm)\b`),
	lineclass.Pattern("markdown", `^#+\s|^\s*[-*+]\s|\[.*\]\(.*\)`),
}

// tags lists the languages Infer can return besides Text.
var tags = Patterns.Tags()

// names matches a language name as a whole word in surrounding prose.
var names = buildNameTable()

func buildNameTable() lineclass.Table[string] {
	table := make(lineclass.Table[string], 0, len(tags))
	for _, tag := range tags {
		table = append(table, lineclass.Pattern(tag, `\b`+regexp.QuoteMeta(tag)+`\b`))
	}
	return table
}

// Infer returns the language of a code block given its content and the
// lines surrounding it. The result is deterministic for identical inputs.
func Infer(content string, surrounding []string) string {
	if lang, ok := Patterns.First(content); ok {
		return lang
	}

	around := strings.ToLower(strings.Join(surrounding, " "))
	if lang, ok := names.First(around); ok {
		return lang
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(content)); safe && lang != "" {
		if tag := normalize(lang); slices.Contains(tags, tag) {
			return tag
		}
	}

	return Text
}

// Surrounding returns up to ContextLines lines before index start and after
// index end of lines. Indices are 0-based and inclusive of the block's fence
// lines; out-of-range windows are clipped.
func Surrounding(lines []string, start, end int) []string {
	var out []string

	from := max(start-ContextLines, 0)
	if from < start && start <= len(lines) {
		out = append(out, lines[from:start]...)
	}

	to := min(end+1+ContextLines, len(lines))
	if end+1 < to {
		out = append(out, lines[end+1:to]...)
	}

	return out
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
