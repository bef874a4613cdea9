package scanner

import (
	"log/slog"
	"time"

	"github.com/specvital/typocheck/pkg/config"
	"github.com/specvital/typocheck/pkg/lint"
	"github.com/specvital/typocheck/pkg/parser/framework"
	"github.com/specvital/typocheck/pkg/parser/strategies/all"
)

// Mode selects what the scanner does with each file.
type Mode int

const (
	// ModeCheck reports typos.
	ModeCheck Mode = iota
	// ModeFiles reports the files that would be checked.
	ModeFiles
	// ModeStrings reports the strings that would be checked.
	ModeStrings
	// ModeWrite reports typos and fixes them in place.
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeFiles:
		return "files"
	case ModeStrings:
		return "strings"
	case ModeWrite:
		return "write"
	default:
		return "check"
	}
}

// ScanOptions configures scanner behavior.
type ScanOptions struct {
	// Config drives the walk and the per-type settings.
	// If nil, uses config.Default().
	Config *config.Config

	// Logger receives per-file failures. Defaults to a discard logger.
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes to process.
	// Zero means no limit.
	MaxFileSize int64

	// Mode selects what is reported.
	Mode Mode

	// Registry resolves file names to languages.
	// If nil, uses all.Default().
	Registry *framework.Registry

	// Reporter receives the results. Nothing is reported when nil.
	Reporter Reporter

	// Rules are run over every lintable string.
	// If empty, uses lint.DefaultRules().
	Rules []lint.Rule

	// Sort processes files one at a time in path order.
	// Workers is ignored when set.
	Sort bool

	// Timeout is the maximum duration for the entire scan operation.
	// Zero means no timeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file checks.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// ScanOption is a functional option for configuring Scanner.
type ScanOption func(*ScanOptions)

// WithWorkers sets the number of concurrent file checks.
// Negative values are ignored.
func WithWorkers(n int) ScanOption {
	return func(o *ScanOptions) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the scan timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithSort makes the scan sequential and ordered by path.
func WithSort(sorted bool) ScanOption {
	return func(o *ScanOptions) {
		o.Sort = sorted
	}
}

// WithMode sets what the scanner reports.
func WithMode(mode Mode) ScanOption {
	return func(o *ScanOptions) {
		o.Mode = mode
	}
}

func WithConfig(cfg *config.Config) ScanOption {
	return func(o *ScanOptions) {
		o.Config = cfg
	}
}

func WithRegistry(registry *framework.Registry) ScanOption {
	return func(o *ScanOptions) {
		o.Registry = registry
	}
}

func WithReporter(r Reporter) ScanOption {
	return func(o *ScanOptions) {
		o.Reporter = r
	}
}

func WithRules(rules ...lint.Rule) ScanOption {
	return func(o *ScanOptions) {
		o.Rules = rules
	}
}

func WithLogger(logger *slog.Logger) ScanOption {
	return func(o *ScanOptions) {
		o.Logger = logger
	}
}

// WithMaxFileSize sets the maximum file size to process.
// Negative values are ignored.
func WithMaxFileSize(size int64) ScanOption {
	return func(o *ScanOptions) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

func applyDefaults(opts *ScanOptions) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Registry == nil {
		opts.Registry = all.Default()
	}
	if len(opts.Rules) == 0 {
		opts.Rules = lint.DefaultRules()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}
}
