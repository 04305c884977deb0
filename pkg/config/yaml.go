package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// yamlIndent matches the layout of the generated templates.
const yamlIndent = 2

// ToYAML encodes the persisted fields of c. Command-line only fields are
// tagged yaml:"-" and never written.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line. header
// is written as given, so it should already be a YAML comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	out := make([]byte, 0, len(header)+len(body)+2)
	out = append(out, header...)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	out = append(out, '\n')
	return append(out, body...), nil
}

// FromYAML decodes a config file. The result always has a non-nil Rules map;
// absent fields stay zero so that merging leaves lower layers in place.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return &cfg, nil
}

// Clone returns a copy of c sharing no maps, slices or pointers with it,
// including values nested in rule options.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)

	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = rc.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of rc.
func (rc RuleConfig) Clone() RuleConfig {
	var out RuleConfig
	if rc.Enabled != nil {
		out.Enabled = new(bool)
		*out.Enabled = *rc.Enabled
	}
	if rc.Severity != nil {
		out.Severity = new(string)
		*out.Severity = *rc.Severity
	}
	if rc.Options != nil {
		out.Options = cloneValue(rc.Options).(map[string]any)
	}
	return out
}

// cloneValue copies the container shapes yaml.v3 and encoding/json decode
// into. Scalars are returned as is.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(v)
	case map[string]string:
		return maps.Clone(v)
	default:
		return v
	}
}
