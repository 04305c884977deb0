package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/mdfix/pkg/config"
)

// envVarPrefix is the prefix for all mdfix environment variables.
const envVarPrefix = "MDFIX_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":           {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"SEVERITY_DEFAULT": {"severity_default", envTypeString, "Default severity: error, warning, or info"},
	"MAX_LINE_LENGTH":  {"max_line_length", envTypeInt, "Line length limit for the structural checks"},
	"FIX":              {"fix", envTypeBool, "Write fixed documents: true or false"},
	"DRY_RUN":          {"dry_run", envTypeBool, "Show fixes as a diff without writing: true or false"},
	"JOBS":             {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"FORMAT":           {"format", envTypeString, "Output format: text, json, wire, or diff"},
	"RULE_FORMAT":      {"rule_format", envTypeString, "Rule identifiers in output: name, id, or combined"},
	"BACKUPS_ENABLED":  {"backups.enabled", envTypeBool, "Keep a sidecar backup when fixing: true or false"},
	"BACKUPS_MODE":     {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"IGNORE":           {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"NO_BACKUPS":       {"no_backups", envTypeBool, "Disable backups: true or false"},
}

// lookupFunc reports the value of a variable and whether it is set.
type lookupFunc func(key string) (string, bool)

// LoadFromEnv applies MDFIX_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

// LoadFromDotEnv applies the MDFIX_* keys of a dotenv file to cfg. Keys that
// are also set in the process environment are skipped so the real
// environment keeps precedence.
func LoadFromDotEnv(cfg *config.Config, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return applyEnv(cfg, func(key string) (string, bool) {
		if _, set := os.LookupEnv(key); set {
			return "", false
		}
		value, ok := values[key]
		return value, ok
	})
}

func applyEnv(cfg *config.Config, lookup lookupFunc) error {
	if cfg == nil {
		return nil
	}

	// Sorted so the first reported error is stable.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value, dropping empty elements.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "severity_default":
		cfg.SeverityDefault = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "rule_format":
		cfg.RuleFormat = config.RuleFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_line_length":
		cfg.MaxLineLength = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
