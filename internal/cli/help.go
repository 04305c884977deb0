package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
)

// helpTemplate renders command help. Styling functions come from
// helpFuncs.
const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// installHelp renders help for cmd and its subcommands with lipgloss
// styles. The color mode is read when help is shown, after flag parsing.
func installHelp(cmd *cobra.Command, colorMode *string) {
	tmpl := func(w io.Writer) *template.Template {
		styles := pretty.NewStyles(pretty.IsColorEnabled(*colorMode, w))
		return template.Must(template.New("help").Funcs(helpFuncs(styles)).Parse(helpTemplate))
	}

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		out := command.OutOrStdout()
		if err := tmpl(out).Execute(out, command); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		out := command.OutOrStderr()
		return tmpl(out).Execute(out, command)
	})
}

func helpFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"heading":                 styles.SummaryTitle.Render,
		"command":                 styles.Bold.Render,
		"flagUsages":              func(usages string) string { return styleFlagUsages(styles, usages) },
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// styleFlagUsages styles pflag usage lines of the form
// "  -f, --flag type   description".
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		flagPart, desc, ok := splitFlagLine(line)
		if !ok {
			continue
		}

		tokens := strings.Fields(flagPart)
		for j, token := range tokens {
			if strings.HasPrefix(token, "-") {
				clean := strings.TrimSuffix(token, ",")
				tokens[j] = styles.RuleID.Render(clean) + strings.TrimPrefix(token, clean)
			} else {
				tokens[j] = styles.Dim.Render(token)
			}
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		lines[i] = indent + strings.Join(tokens, " ") + "   " + desc
	}
	return strings.Join(lines, "\n")
}

// splitFlagLine splits a flag usage line at the first run of two or more
// spaces after the flag definition.
func splitFlagLine(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return "", "", false
	}

	idx := strings.Index(trimmed, "  ")
	if idx < 0 {
		return "", "", false
	}
	desc := strings.TrimLeft(trimmed[idx:], " ")
	if desc == "" {
		return "", "", false
	}
	return trimmed[:idx], desc, true
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
