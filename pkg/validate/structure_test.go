package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/lineclass"
	"github.com/yaklabco/mdfix/pkg/validate"
)

func TestHeadingHierarchy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []finding.Finding
	}{
		{
			name: "valid hierarchy",
			text: "# Title\n\n## Section\n\n### Sub\n\n## Next\n",
		},
		{
			name: "skipped level",
			text: "# Title\n\n## Section\n\n#### Subsection\n",
			want: []finding.Finding{finding.SkippedLevel(5, 3)},
		},
		{
			name: "first heading compared against level one",
			text: "### Deep start\n",
			want: []finding.Finding{finding.SkippedLevel(1, 2)},
		},
		{
			name: "second h1",
			text: "# A\n\nbody\n\n# B\n",
			want: []finding.Finding{finding.MultipleTopLevel(5)},
		},
		{
			name: "decreasing level is allowed",
			text: "# A\n\n## B\n\n### C\n\n## D\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := validate.HeadingHierarchy(doccontext.Build(tt.text))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuplicateHeadings(t *testing.T) {
	t.Parallel()

	ctx := doccontext.Build("# Doc\n\n## Usage\n\n## Notes\n\n## usage\n\n## Notes\n")
	got := validate.DuplicateHeadings(ctx)

	require.Len(t, got, 2)
	assert.Equal(t, `Duplicate heading "usage" first used at line 3 [3:0]`, got[0].String())
	assert.Equal(t, "notes", got[1].Heading)
	assert.Equal(t, 5, got[1].FirstLine)
}

func TestListMarkers(t *testing.T) {
	t.Parallel()

	t.Run("mixed markers", func(t *testing.T) {
		t.Parallel()
		ctx := doccontext.Build("# Title\n\n* Item 1\n- Item 2\n+ Item 3\n")
		assert.Equal(t, []finding.Finding{
			finding.InconsistentMarkers(4),
			finding.InconsistentMarkers(5),
		}, validate.ListMarkers(ctx))
	})

	t.Run("change across unrelated lists", func(t *testing.T) {
		t.Parallel()
		ctx := doccontext.Build("- a\n- b\n\nparagraph\n\n* c\n")
		assert.Equal(t, []finding.Finding{finding.InconsistentMarkers(6)}, validate.ListMarkers(ctx))
	})

	t.Run("consistent", func(t *testing.T) {
		t.Parallel()
		ctx := doccontext.Build("- a\n  - b\n- c\n")
		assert.Empty(t, validate.ListMarkers(ctx))
	})
}

func TestLineLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 150)
	lines := lineclass.SplitLines("# Title\n\n" + long + "\n```\n" + long + "\n```\n")

	got := validate.LineLength(lines, 0)
	assert.Equal(t, []finding.Finding{finding.TooLong(3, 120), finding.TooLong(5, 120)}, got)

	assert.Empty(t, validate.LineLength(lines, 200))

	wide := []string{strings.Repeat("é", 100)}
	assert.Empty(t, validate.LineLength(wide, 120), "limit counts characters, not bytes")
}

func TestStructure_Order(t *testing.T) {
	t.Parallel()

	ctx := doccontext.Build("# A\n\n### B\n\n* x\n- y\n\n# A\n")
	got := validate.Structure(ctx)

	kinds := make([]finding.Kind, len(got))
	for i, f := range got {
		kinds[i] = f.Kind
	}
	assert.Equal(t, []finding.Kind{
		finding.SkippedHeadingLevel,
		finding.MultipleTopLevelHeadings,
		finding.DuplicateHeading,
		finding.InconsistentListMarkers,
	}, kinds)
}
