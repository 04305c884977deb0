package config

// RuleFormat selects how a rule is labelled in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // no-trailing-spaces
	RuleFormatID       RuleFormat = "id"       // MD009
	RuleFormatCombined RuleFormat = "combined" // MD009/no-trailing-spaces
)

// IsValid reports whether f is a known rule format.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Label renders a rule in format f. Structural findings carry an ID but no
// name, so an empty name always yields the ID.
func (f RuleFormat) Label(id, name string) string {
	switch {
	case name == "", f == RuleFormatID:
		return id
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}
