package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned when an exclude pattern is malformed.
var ErrBadPattern = errors.New("invalid ignore pattern")

// Discover finds the Markdown files selected by opts. It returns sorted,
// de-duplicated absolute paths. Explicitly named files are included even
// when their extension is not a Markdown one, but ignore patterns still
// apply.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	for _, pattern := range opts.ExcludeGlobs {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		if !d.excluded(absPath) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// Broken or unreadable link.
				return nil //nolint:nilerr // skipped on purpose
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || hidden || d.excluded(path) {
					return nil
				}
				target, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // skipped on purpose
				}
				return d.walk(ctx, target)
			}
		}

		if hidden || !d.hasExtension(path) || d.excluded(path) {
			return nil
		}
		d.add(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(d.extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// excluded matches path, relative to the working directory, against the
// exclude patterns.
func (d *discoverer) excluded(path string) bool {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return matchAny(filepath.ToSlash(rel), d.opts.ExcludeGlobs)
}

// matchAny reports whether rel matches one of patterns. A pattern without a
// slash also matches the base name, so "*.tmp.md" works at any depth. A
// directory matched by "dir/**" is matched by its own path too.
func matchAny(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
