package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/check"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/fsutil"
)

// Runner validates and fixes files with a shared Checker.
type Runner struct {
	Checker *check.Checker
}

// New creates a Runner.
func New(checker *check.Checker) *Runner {
	return &Runner{Checker: checker}
}

// Run discovers files under opts.Paths and processes them with a worker
// pool. Outcomes are ordered by path. Per-file failures are recorded on
// the outcome and do not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(len(files))
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.config()
	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesInvalid, result.Stats.FilesWithFindings,
		logging.FieldFilesFixed, result.Stats.FilesFixed,
		logging.FieldBytes, humanize.Bytes(uint64(max(result.Stats.Bytes, 0))),
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, cfg *config.Config) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, cfg)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads path, checks it and, when cfg.Fix is set, fixes it
// once. The fixed content is written back atomically unless cfg.DryRun is
// set. A file that changed on disk since it was read is skipped.
func (r *Runner) ProcessFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}

	outcome := r.ProcessContent(path, content, cfg)
	if !outcome.Fixed || cfg.DryRun || !cfg.Fix {
		return outcome
	}

	err = fsutil.Replace(ctx, snap, outcome.FixedContent, cfg.BackupsEnabled())
	switch {
	case errors.Is(err, fsutil.ErrConcurrentModification):
		logger.Warn("file changed during processing, not writing")
		outcome.Skipped = true
	case err != nil:
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
	default:
		outcome.Written = true
		logger.Debug("wrote fixed file", logging.FieldResidual, len(outcome.Residual))
	}
	return outcome
}

// ProcessContent checks content without touching the file system. When
// cfg.Fix or cfg.DryRun is set the document is fixed once and the diff is
// computed.
func (r *Runner) ProcessContent(path string, content []byte, cfg *config.Config) FileOutcome {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	outcome := FileOutcome{Path: path, Content: content, Bytes: len(content)}

	if !cfg.Fix && !cfg.DryRun {
		report := r.Checker.Check(string(content))
		outcome.Findings = report.Findings
		outcome.Context = report.Context
		return outcome
	}

	report := r.Checker.CheckAndFix(string(content))
	outcome.Findings = report.OriginalFindings
	outcome.Context = report.Context
	if report.Changed {
		outcome.Fixed = true
		outcome.FixedContent = []byte(report.FixedText)
		outcome.Residual = report.ResidualFindings
		outcome.Diff = fix.GenerateDiff(path, content, outcome.FixedContent)
	}
	return outcome
}
