package fix

import (
	"bytes"
	"strings"

	diff "github.com/shogoki/gotextdiff"
)

// Diff is a unified diff between a document and its fixed form.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Original is the content before fixing.
	Original []byte

	// Modified is the content after fixing.
	Modified []byte

	// Text is the unified diff body.
	Text string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// GenerateDiff returns the unified diff from original to modified, or nil
// when the two are identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	path = strings.TrimPrefix(path, "/")
	text := string(diff.Diff("a/"+path, original, "b/"+path, modified))
	if text == "" {
		return nil
	}

	d := &Diff{Path: path, Original: original, Modified: modified, Text: text}
	inHunk := false
	for line := range strings.SplitSeq(text, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
			// File headers.
		case strings.HasPrefix(line, "+"):
			d.Additions++
		case strings.HasPrefix(line, "-"):
			d.Deletions++
		}
	}
	return d
}

// String returns the unified diff text.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Text
}

// HasChanges reports whether the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Additions+d.Deletions > 0
}
