package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/config"
)

// severityWidth pads the severity column to the longest severity name.
const severityWidth = len("warning")

// FormatRuleInfo renders one row of the rule listing. labelWidth aligns the
// identifier column across rows.
func (s *Styles) FormatRuleInfo(info config.RuleInfo, format config.RuleFormat, labelWidth int) string {
	label := format.Label(info.ID, info.Name)
	severity := string(info.Severity)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(s.RuleID.Render(label))
	b.WriteString(strings.Repeat(" ", max(labelWidth-len(label), 0)+2))
	b.WriteString(s.Dim.Render(severity))
	b.WriteString(strings.Repeat(" ", max(severityWidth-len(severity), 0)+2))
	b.WriteString(s.Message.Render(info.Description))
	if !info.Enabled {
		b.WriteString(s.Dim.Render(" (disabled by default)"))
	}
	if len(info.Tags) > 0 {
		b.WriteString(s.Dim.Render(fmt.Sprintf(" [%s]", strings.Join(info.Tags, ", "))))
	}
	b.WriteString("\n")
	return b.String()
}
