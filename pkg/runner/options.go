// Package runner validates and fixes many Markdown files concurrently.
package runner

import "github.com/yaklabco/mdfix/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions considered Markdown, lowercase with a leading dot.
	// Empty means DefaultExtensions.
	Extensions []string

	// ExcludeGlobs are doublestar patterns matched against slash-separated
	// paths relative to WorkingDir. Patterns without a slash also match the
	// base name.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs caps the worker pool. Zero or negative means runtime.NumCPU.
	Jobs int

	// Config supplies the fix, dry-run and backup switches.
	Config *config.Config
}

// DefaultExtensions returns the default Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// OptionsFromConfig builds Options for paths from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
