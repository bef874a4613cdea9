package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSkipPatterns contains directory names that are never walked.
var DefaultSkipPatterns = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"__pycache__",
}

// WalkOptions configures Walk.
type WalkOptions struct {
	// IgnoreHidden skips files and directories whose name starts with a dot.
	IgnoreHidden bool
	// Exclude holds glob patterns matched against slash separated relative paths.
	// A pattern without a slash also matches the base name at any depth,
	// unless it starts with a slash.
	Exclude []string
	// MaxFileSize skips larger files. Zero means no limit.
	MaxFileSize int64
}

// Walk returns the regular files below src.Root(), relative to it and sorted.
// Errors on single entries are collected and do not stop the walk.
func Walk(ctx context.Context, src Source, opts WalkOptions) ([]string, []error) {
	root := src.Root()
	skipSet := buildSkipSet(DefaultSkipPatterns)

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipSet[d.Name()] || (opts.IgnoreHidden && isHidden(d.Name())) || IsExcluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if (opts.IgnoreHidden && isHidden(d.Name())) || IsExcluded(rel, opts.Exclude) {
			return nil
		}

		if opts.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > opts.MaxFileSize {
				return nil
			}
		}

		files = append(files, rel)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	sort.Strings(files)
	return files, errs
}

// IsExcluded reports whether the slash separated path rel matches one of patterns.
func IsExcluded(rel string, patterns []string) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}

	for _, pattern := range patterns {
		anchored := strings.HasPrefix(pattern, "/")
		pattern = strings.TrimPrefix(pattern, "/")
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if !anchored && !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, base); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}
