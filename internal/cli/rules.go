package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	tag        string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
}

func newRulesCommand(global *globalFlags) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [query]",
		Short: "List the rule table",
		Long: `List the rules applied on top of the structural checks, with their IDs,
names, default severity and tags.

An optional query fuzzy-matches against rule IDs, names and descriptions.

Examples:
  mdfix rules                  # List every rule
  mdfix rules trailing         # Rules matching "trailing"
  mdfix rules --tag whitespace # Rules tagged whitespace
  mdfix rules --format json    # Machine-readable listing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			format := config.RuleFormat(flags.ruleFormat)
			if !format.IsValid() {
				return &usageError{err: fmt.Errorf("unknown rule format %q: expected name, id or combined", flags.ruleFormat)}
			}

			infos := filterRules(rules.NewRegistry().Infos(), query, flags.tag)

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			case "text":
				styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, cmd.OutOrStdout()))
				return outputRulesText(cmd.OutOrStdout(), styles, infos, format)
			default:
				return &usageError{err: fmt.Errorf("unknown format %q: expected text or json", flags.format)}
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list rules with this tag")

	return cmd
}

// filterRules narrows infos to those carrying tag and matching query.
// Query matches are ordered best first; otherwise the ID order is kept.
func filterRules(infos []config.RuleInfo, query, tag string) []config.RuleInfo {
	if tag != "" {
		infos = slices.DeleteFunc(infos, func(info config.RuleInfo) bool {
			return !slices.Contains(info.Tags, tag)
		})
	}
	if query == "" {
		return infos
	}

	targets := make([]string, len(infos))
	for i, info := range infos {
		targets[i] = strings.Join([]string{info.ID, info.Name, info.Description}, " ")
	}

	matches := fuzzy.Find(query, targets)
	filtered := make([]config.RuleInfo, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, infos[match.Index])
	}
	return filtered
}

func outputRulesText(w io.Writer, styles *pretty.Styles, infos []config.RuleInfo, format config.RuleFormat) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "no matching rules")
		return err
	}

	width := 0
	for _, info := range infos {
		width = max(width, len(format.Label(info.ID, info.Name)))
	}

	var b strings.Builder
	for _, info := range infos {
		b.WriteString(styles.FormatRuleInfo(info, format, width))
	}
	fmt.Fprintf(&b, "\n%s\n", styles.Dim.Render(english.Plural(len(infos), "rule", "")))

	_, err := io.WriteString(w, b.String())
	return err
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		tags := info.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Tags:        tags,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
