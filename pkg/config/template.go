package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation.
	// If false, generates a minimal template.
	Full bool
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider returns rule metadata. It decouples this package from
// the lint registry.
type RuleInfoProvider func() []RuleInfo

const templateHeader = `# mdfix configuration
# See: https://github.com/yaklabco/mdfix
`

const templateBody = `
# Markdown flavor used to parse documents for the rule table: commonmark or gfm
flavor: commonmark

# Default severity for rules that don't set one: error, warning, or info
severity_default: error

# Lines longer than this are reported by the structural checks
max_line_length: 120

# Files to skip (doublestar patterns, matched against slash-separated paths)
ignore:
  - "**/node_modules/**"
  - "**/vendor/**"

# Backup behavior when fixing: mode is sidecar or none
backups:
  enabled: true
  mode: sidecar
`

// GenerateTemplate creates a commented configuration template. Rule
// documentation is included when opts.Full is set and provider is not nil.
func GenerateTemplate(opts TemplateOptions, provider RuleInfoProvider) []byte {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	buf.WriteString(templateBody)

	if !opts.Full || provider == nil {
		buf.WriteString(`
# Rule-specific configuration, keyed by rule ID or name
# rules:
#   MD010:
#     enabled: false
#   no-trailing-spaces:
#     severity: warning
#     options:
#       br_spaces: 2
`)
		return buf.Bytes()
	}

	rules := provider()
	slices.SortFunc(rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })

	buf.WriteString("\n# Rule-specific configuration\nrules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return strings.TrimSuffix(templateHeader, "\n")
}
