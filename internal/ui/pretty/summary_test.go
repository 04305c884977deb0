package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3, Bytes: 120},
			want:  "No findings (3 files checked, 120 B)\n",
		},
		{
			name: "findings",
			stats: runner.Stats{
				FilesProcessed:    2,
				FilesWithFindings: 1,
				Findings:          3,
				Residual:          3,
				FindingsBySeverity: map[finding.Severity]int{
					finding.SeverityError:   2,
					finding.SeverityWarning: 1,
				},
				Bytes: 2048,
			},
			want: "3 findings (2 errors, 1 warning) in 1 file (2 files checked, 2.0 kB)\n",
		},
		{
			name:  "fixed",
			stats: runner.Stats{FilesProcessed: 1, FilesWithFindings: 1, Findings: 4, FilesFixed: 1, FilesWritten: 1},
			want:  "No findings (1 file checked, 0 B), 1 file fixed\n",
		},
		{
			name:  "dry run and failures",
			stats: runner.Stats{FilesProcessed: 1, FilesFixed: 1, FilesErrored: 2, FilesSkipped: 1},
			want:  "No findings (1 file checked, 0 B), 1 file fixable, 1 file changed on disk, skipped, 2 files failed\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()
	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{
		FilesProcessed:     1200,
		FilesWithFindings:  1,
		Findings:           2,
		Residual:           1,
		FindingsBySeverity: map[finding.Severity]int{finding.SeverityWarning: 1},
	})

	assert.Contains(t, out, "Files checked:     1,200\n")
	assert.Contains(t, out, "Files with findings:1\n")
	assert.Contains(t, out, "Remaining:         1\n")
	assert.Contains(t, out, "Check completed with warnings")

	assert.Contains(t, styles.FormatSummary(runner.Stats{}), "Check passed")
}
