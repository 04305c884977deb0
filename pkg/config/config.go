// Package config defines the configuration types for mdfix.
// These types are pure data; loading them from disk is done by
// internal/configloader.
package config

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" json:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// OutputFormat specifies the output format for findings.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	// FormatWire prints one "<message> [<line>:<column>]" line per finding.
	FormatWire OutputFormat = "wire"
	FormatDiff OutputFormat = "diff"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatWire, FormatDiff:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used to parse documents for the
// rule table.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid reports whether f is a known flavor.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// DefaultMaxLineLength is the default physical line length limit.
const DefaultMaxLineLength = 120

// Config is the root configuration structure for mdfix.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// SeverityDefault is the severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// MaxLineLength is the line length limit for the structural checks.
	MaxLineLength int `yaml:"max_line_length"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore contains doublestar glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix writes the fixed document back.
	Fix bool `yaml:"-"`

	// DryRun shows the fix as a diff without writing.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityError),
		MaxLineLength:   DefaultMaxLineLength,
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// LineLimit returns MaxLineLength, or the default when unset.
func (c *Config) LineLimit() int {
	if c == nil || c.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return c.MaxLineLength
}

// BackupsEnabled reports whether fixed files get a backup copy.
func (c *Config) BackupsEnabled() bool {
	return !c.NoBackups && c.Backups.Enabled && c.Backups.Mode != BackupModeNone
}
