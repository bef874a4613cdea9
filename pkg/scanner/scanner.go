// Package scanner walks the given paths and checks every supported file.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/lint"
	"github.com/specvital/typocheck/pkg/source"
)

const (
	// DefaultWorkers indicates that the scanner should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
)

var (
	// ErrScanCancelled is returned when scanning is cancelled via context.
	ErrScanCancelled = errors.New("scanner: scan cancelled")
	// ErrScanTimeout is returned when scanning exceeds the timeout duration.
	ErrScanTimeout = errors.New("scanner: scan timeout")
)

// Error phases.
const (
	PhaseDiscovery = "discovery"
	PhaseRead      = "read"
	PhaseParse     = "parse"
	PhaseFix       = "fix"
)

// Reporter receives the results of a scan.
// Calls for one file are made together and never interleave with another file.
type Reporter interface {
	ReportFile(path string) error
	ReportString(path string, s domain.LintableString) error
	ReportTypo(typo lint.Typo) error
}

// Scanner checks files with the registered languages.
type Scanner struct {
	options *ScanOptions
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path     string
	Language domain.Language
	// Strings is only filled in ModeStrings.
	Strings []domain.LintableString
	Typos   []lint.Typo
	// Fixed is the number of typos removed in ModeWrite.
	Fixed int
}

// ScanResult contains the outcome of a scan operation.
type ScanResult struct {
	// Files holds the checked files ordered by path.
	Files []FileResult

	// Errors contains non-fatal errors encountered during scanning.
	Errors []FileError

	Stats ScanStats
}

// TypoCount returns the number of typos across all files.
func (r *ScanResult) TypoCount() int {
	return r.Stats.TyposFound
}

// FileError represents an error that occurred during a specific phase of scanning.
type FileError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "read", "parse", "fix"
	Phase string
}

// Error implements the error interface.
func (e FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// ScanStats provides statistics about the scan operation.
type ScanStats struct {
	// FilesScanned is the number of files found by the walk.
	FilesScanned int

	// FilesChecked is the number of files that were parsed and checked.
	FilesChecked int

	// FilesSkipped counts unsupported files and files with check-file disabled.
	FilesSkipped int

	// FilesFailed is the number of files that could not be read, parsed or fixed.
	FilesFailed int

	TyposFound int
	TyposFixed int

	// Duration is the total scan duration.
	Duration time.Duration
}

// target is a walked file: its source and its path relative to the source root.
type target struct {
	src     *source.LocalSource
	rel     string
	display string
}

// NewScanner creates a new scanner with the given options.
func NewScanner(opts ...ScanOption) *Scanner {
	options := &ScanOptions{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Scanner{options: options}
}

// Scan checks every path. Directories are walked, files are checked directly.
// Per-file failures are collected in ScanResult.Errors and do not stop the scan.
func (s *Scanner) Scan(ctx context.Context, paths ...string) (*ScanResult, error) {
	startTime := time.Now()

	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	result := &ScanResult{
		Files:  []FileResult{},
		Errors: []FileError{},
	}

	s.warnUnknownTypes()

	targets, errs := s.discover(ctx, paths)
	result.Errors = append(result.Errors, errs...)
	result.Stats.FilesScanned = len(targets)

	if s.options.Sort {
		s.checkSequential(ctx, targets, result)
	} else {
		s.checkParallel(ctx, targets, result)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	result.Stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrScanTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrScanCancelled
		}
	}

	return result, nil
}

// Scan is a convenience wrapper around NewScanner(opts...).Scan(ctx, paths...).
func Scan(ctx context.Context, paths []string, opts ...ScanOption) (*ScanResult, error) {
	return NewScanner(opts...).Scan(ctx, paths...)
}

// warnUnknownTypes logs the [type.*] tables of the config that no language uses.
func (s *Scanner) warnUnknownTypes() {
	names := make([]string, 0, len(s.options.Config.Type))
	for name := range s.options.Config.Type {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if s.options.Registry.FindByName(domain.Language(name)) == nil {
			s.options.Logger.Warn("unknown file type in config", "type", name)
		}
	}
}

func (s *Scanner) discover(ctx context.Context, paths []string) ([]target, []FileError) {
	var (
		targets []target
		errs    []FileError
	)

	files := s.options.Config.Files
	walkOpts := source.WalkOptions{
		IgnoreHidden: files.IgnoreHidden,
		Exclude:      files.ExtendExclude,
		MaxFileSize:  s.options.MaxFileSize,
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, FileError{Err: err, Path: path, Phase: PhaseDiscovery})
			continue
		}

		if !info.IsDir() {
			src, err := source.NewLocalSource(filepath.Dir(path))
			if err != nil {
				errs = append(errs, FileError{Err: err, Path: path, Phase: PhaseDiscovery})
				continue
			}
			targets = append(targets, target{src: src, rel: filepath.Base(path), display: path})
			continue
		}

		src, err := source.NewLocalSource(path)
		if err != nil {
			errs = append(errs, FileError{Err: err, Path: path, Phase: PhaseDiscovery})
			continue
		}

		rels, walkErrs := source.Walk(ctx, src, walkOpts)
		for _, err := range walkErrs {
			errs = append(errs, FileError{Err: err, Path: path, Phase: PhaseDiscovery})
		}
		for _, rel := range rels {
			targets = append(targets, target{
				src:     src,
				rel:     rel,
				display: filepath.Join(path, filepath.FromSlash(rel)),
			})
		}
	}

	return targets, errs
}

func (s *Scanner) checkSequential(ctx context.Context, targets []target, result *ScanResult) {
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].display < targets[j].display
	})

	for _, t := range targets {
		if ctx.Err() != nil {
			return
		}
		fileResult, fileErr := s.checkFile(ctx, t)
		s.record(result, t, fileResult, fileErr)
	}
}

func (s *Scanner) checkParallel(ctx context.Context, targets []target, result *ScanResult) {
	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex

	for _, t := range targets {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			fileResult, fileErr := s.checkFile(gCtx, t)

			mu.Lock()
			defer mu.Unlock()
			s.record(result, t, fileResult, fileErr)

			return nil
		})
	}

	_ = g.Wait()
}

// record updates result and forwards the file to the reporter. Callers serialize calls.
func (s *Scanner) record(result *ScanResult, t target, fileResult *FileResult, fileErr *FileError) {
	logger := s.options.Logger

	if fileErr != nil {
		logger.Warn("failed to check file", "path", fileErr.Path, "phase", fileErr.Phase, "error", fileErr.Err)
		result.Errors = append(result.Errors, *fileErr)
		result.Stats.FilesFailed++
		// Typos found before a failed fix are still reported.
		if fileResult == nil {
			return
		}
	}

	if fileResult == nil {
		logger.Debug("skipping file", "path", t.display)
		result.Stats.FilesSkipped++
		return
	}

	if fileErr == nil {
		result.Stats.FilesChecked++
	}
	result.Stats.TyposFound += len(fileResult.Typos)
	result.Stats.TyposFixed += fileResult.Fixed
	result.Files = append(result.Files, *fileResult)

	s.report(*fileResult)
}

func (s *Scanner) report(r FileResult) {
	reporter := s.options.Reporter
	if reporter == nil {
		return
	}

	var err error
	switch s.options.Mode {
	case ModeFiles:
		err = reporter.ReportFile(r.Path)
	case ModeStrings:
		for _, str := range r.Strings {
			if err = reporter.ReportString(r.Path, str); err != nil {
				break
			}
		}
	default:
		for _, typo := range r.Typos {
			if err = reporter.ReportTypo(typo); err != nil {
				break
			}
		}
	}

	if err != nil {
		s.options.Logger.Error("failed to report", "path", r.Path, "error", err)
	}
}

// checkFile returns nil, nil for files that are not checked.
func (s *Scanner) checkFile(ctx context.Context, t target) (*FileResult, *FileError) {
	if err := ctx.Err(); err != nil {
		return nil, &FileError{Err: err, Path: t.display, Phase: PhaseRead}
	}

	def := s.options.Registry.Find(t.display)
	if def == nil {
		return nil, nil
	}

	engine := s.options.Config.EngineFor(def.Name)
	if !engine.CheckFile {
		return nil, nil
	}

	result := &FileResult{Path: t.display, Language: def.Name}
	if s.options.Mode == ModeFiles {
		return result, nil
	}

	content, err := source.ReadFile(ctx, t.src, t.rel)
	if err != nil {
		return nil, &FileError{Err: err, Path: t.display, Phase: PhaseRead}
	}

	linter := lint.NewLinter(def, domain.NewSourceFile(t.display, content), s.options.Rules...)

	if s.options.Mode == ModeStrings {
		strs, err := linter.Strings(ctx)
		if err != nil {
			return nil, &FileError{Err: err, Path: t.display, Phase: PhaseParse}
		}
		result.Strings = strs
		return result, nil
	}

	linter.ExtendIgnoreRe(engine.IgnoreRe)
	typos, err := linter.Typos(ctx)
	if err != nil {
		return nil, &FileError{Err: err, Path: t.display, Phase: PhaseParse}
	}
	result.Typos = typos

	if s.options.Mode != ModeWrite || len(typos) == 0 {
		return result, nil
	}

	path, err := t.src.Path(t.rel)
	if err != nil {
		return result, &FileError{Err: err, Path: t.display, Phase: PhaseFix}
	}
	fixed, err := lint.ApplyFixes(path, typos)
	if err != nil {
		return result, &FileError{Err: err, Path: t.display, Phase: PhaseFix}
	}
	result.Fixed = fixed

	return result, nil
}
