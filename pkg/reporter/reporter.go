// Package reporter writes runner results in the text, json, wire and diff
// formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes the result. It returns the number of findings still
	// applying and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatWire:
		return NewWireReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
