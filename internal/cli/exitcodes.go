package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/pkg/fsutil"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/reporter"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// Exit codes for mdfix.
const (
	// ExitSuccess indicates successful execution with no findings left.
	ExitSuccess = 0

	// ExitFindings indicates the run completed but findings remain.
	ExitFindings = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFindings signals that findings remain. It carries no message worth
// logging; the report has already been written.
var ErrFindings = errors.New("findings reported")

// ErrFilesFailed signals that one or more files could not be processed.
var ErrFilesFailed = errors.New("one or more files could not be processed")

// usageError marks errors caused by invalid flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// ExitCodeFromResult returns the exit code for a completed run. Remaining
// findings take precedence over per-file I/O failures.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result.HasIssues():
		return ExitFindings
	case result.HasErrors():
		return ExitIOError
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		usage     *usageError
		loadErr   *configloader.LoadError
		configErr *lint.ConfigError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFindings):
		return ExitFindings
	case errors.As(err, &usage), errors.Is(err, reporter.ErrUnknownFormat):
		return ExitInvalidUsage
	case errors.As(err, &loadErr), errors.As(err, &configErr), errors.Is(err, runner.ErrBadPattern):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
