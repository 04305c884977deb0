package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// WireReporter prints one "<message> [<line>:<column>]" line per finding
// still applying. With more than one file each line is prefixed with
// "<path>: ".
type WireReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewWireReporter creates a wire reporter.
func NewWireReporter(opts Options) *WireReporter {
	return &WireReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *WireReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	prefixed := len(result.Files) > 1
	total := 0
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: error: %v\n", path, file.Error)
			continue
		}
		for _, f := range file.Remaining() {
			if prefixed {
				fmt.Fprintf(r.bw, "%s: ", path)
			}
			fmt.Fprintln(r.bw, f.String())
			total++
		}
	}
	return total, nil
}
