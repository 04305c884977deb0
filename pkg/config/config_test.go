package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, 120, cfg.MaxLineLength)
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.True(t, cfg.BackupsEnabled())
	assert.NotNil(t, cfg.Rules)
}

func TestConfig_LineLimit(t *testing.T) {
	var nilCfg *config.Config
	assert.Equal(t, config.DefaultMaxLineLength, nilCfg.LineLimit())
	assert.Equal(t, config.DefaultMaxLineLength, (&config.Config{}).LineLimit())
	assert.Equal(t, 80, (&config.Config{MaxLineLength: 80}).LineLimit())
}

func TestConfig_BackupsEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{"sidecar", config.Config{Backups: config.BackupsConfig{Enabled: true, Mode: "sidecar"}}, true},
		{"disabled", config.Config{Backups: config.BackupsConfig{Enabled: false, Mode: "sidecar"}}, false},
		{"mode none", config.Config{Backups: config.BackupsConfig{Enabled: true, Mode: "none"}}, false},
		{"no-backups flag", config.Config{Backups: config.BackupsConfig{Enabled: true}, NoBackups: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BackupsEnabled())
		})
	}
}

func TestValidity(t *testing.T) {
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())

	assert.True(t, config.FormatWire.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("mdx").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		out := string(config.GenerateTemplate(config.TemplateOptions{}, nil))
		assert.Contains(t, out, "# mdfix configuration")
		assert.Contains(t, out, "max_line_length: 120")
		assert.Contains(t, out, "# rules:")

		cfg, err := config.FromYAML([]byte(out))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
		assert.Equal(t, []string{"**/node_modules/**", "**/vendor/**"}, cfg.Ignore)
	})

	t.Run("full", func(t *testing.T) {
		provider := func() []config.RuleInfo {
			return []config.RuleInfo{
				{ID: "MD047", Name: "single-trailing-newline", Description: "Files should end with a single newline character", Enabled: true, Severity: config.SeverityError},
				{ID: "MD009", Name: "no-trailing-spaces", Description: "Trailing spaces", Enabled: true, Severity: config.SeverityWarning, Tags: []string{"whitespace"}},
			}
		}

		out := config.GenerateTemplate(config.TemplateOptions{Full: true}, provider)

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		require.Contains(t, cfg.Rules, "MD009")
		assert.Equal(t, "warning", *cfg.Rules["MD009"].Severity)
		assert.Contains(t, string(out), "# Tags: whitespace")
		assert.Less(t,
			strings.Index(string(out), "MD009:"),
			strings.Index(string(out), "MD047:"),
			"rules are sorted by ID")
	})
}
