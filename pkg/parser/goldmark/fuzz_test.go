package goldmark_test

import (
	"testing"

	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/parser/goldmark"
)

// FuzzParse checks that parsing and position lookups never panic.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"- list item\n* other",
		"```\ncode\n```",
		"```go\nunterminated",
		"Title\n=====",
		"line1\r\nline2",
		"> quote\n> - item",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	parser := goldmark.New(goldmark.FlavorGFM)

	f.Fuzz(func(t *testing.T, data []byte) {
		root, err := parser.Parse(data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		doc := lint.NewDocument(data, root)
		for n := root.FirstChild(); n != nil; n = n.NextSibling() {
			start, end := doc.StartLine(n), doc.EndLine(n)
			if start > 0 && end > 0 && end < start {
				t.Errorf("node %s ends (%d) before it starts (%d)", n.Kind(), end, start)
			}
		}
	})
}
