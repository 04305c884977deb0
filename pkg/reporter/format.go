package reporter

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/config"
)

// Format is an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText = config.FormatText
	FormatJSON = config.FormatJSON
	FormatWire = config.FormatWire
	FormatDiff = config.FormatDiff
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(name)
	if !format.IsValid() {
		return "", fmt.Errorf("%w %q; valid formats: text, json, wire, diff", ErrUnknownFormat, name)
	}
	return format, nil
}
