// Package cli provides the command-line interface of typocheck.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/specvital/typocheck/pkg/config"
	"github.com/specvital/typocheck/pkg/parser/framework"
	"github.com/specvital/typocheck/pkg/parser/strategies/all"
	"github.com/specvital/typocheck/pkg/report"
	"github.com/specvital/typocheck/pkg/scanner"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitTypos = 1
	ExitError = 2
)

// Version information (set at build time).
var Version = "0.1.0"

var errUnknownColor = errors.New("unknown color mode")

type options struct {
	files        bool
	strings      bool
	writeChanges bool
	typeList     bool
	dumpConfig   string
	sort         bool
	format       string
	color        string
	exclude      []string
	configFile   string
	workers      int
	verbose      bool
}

// NewRootCmd creates the root command. The exit code of a run is stored in code.
func NewRootCmd(code *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "typocheck [PATH...]",
		Short: "Find spaces put before punctuation marks in source code",
		Long: `typocheck extracts comments, strings and prose from source files and reports
spaces put before ':', '!', '?', '‽' and '⸘', as English typography requires.

Paths default to the current directory. Directories are walked recursively.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			cmd.SetContext(WithLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := run(cmd, opts, args)
			*code = c
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.files, "files", false, "Print the files that would be checked")
	flags.BoolVar(&opts.strings, "strings", false, "Print the strings that would be checked")
	flags.BoolVarP(&opts.writeChanges, "write-changes", "w", false, "Fix typos in place")
	flags.StringVar(&opts.dumpConfig, "dump-config", "", "Write the effective configuration to OUTPUT (- for stdout)")
	flags.BoolVar(&opts.typeList, "type-list", false, "Print the supported file types")
	flags.BoolVar(&opts.sort, "sort", false, "Check files one at a time in path order")
	flags.StringVar(&opts.format, "format", string(report.FormatLong), "Output format (long|json)")
	flags.StringVar(&opts.color, "color", "auto", "Colorize output (auto|always|never)")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "Ignore files and directories matching the glob (repeatable)")
	flags.BoolP("hidden", "H", false, "Check hidden files and directories")
	flags.Bool("no-hidden", false, "Skip hidden files and directories")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: typos.toml, _typos.toml, .typos.toml or pyproject.toml)")
	flags.IntVarP(&opts.workers, "workers", "j", scanner.DefaultWorkers, "Number of files checked concurrently (0: one per CPU)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	cmd.MarkFlagsMutuallyExclusive("files", "strings", "write-changes", "dump-config", "type-list")
	cmd.MarkFlagsMutuallyExclusive("hidden", "no-hidden")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(report.FormatLong), string(report.FormatJSON)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("color", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := ExitOK
	cmd := NewRootCmd(&code)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return code
}

func run(cmd *cobra.Command, opts *options, args []string) (int, error) {
	ctx := cmd.Context()
	logger := GetLogger(ctx)
	stdout := cmd.OutOrStdout()

	registry := all.Default()
	registry.SetLogger(logger)

	if opts.typeList {
		printTypeList(stdout, registry)
		return ExitOK, nil
	}

	loaded, err := config.Load(config.Options{
		File:   opts.configFile,
		Flags:  cmd.Flags(),
		Logger: logger,
	})
	if err != nil {
		return ExitError, err
	}
	cfg := loaded.Config
	cfg.Files.ExtendExclude = append(cfg.Files.ExtendExclude, opts.exclude...)

	if opts.dumpConfig != "" {
		return ExitOK, dumpConfig(cfg, opts.dumpConfig, stdout)
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return ExitError, err
	}
	colored, err := colorEnabled(opts.color, cmd.ErrOrStderr())
	if err != nil {
		return ExitError, err
	}
	renderer, err := report.NewRenderer(format, colored)
	if err != nil {
		return ExitError, err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	result, err := scanner.Scan(ctx, paths,
		scanner.WithConfig(cfg),
		scanner.WithRegistry(registry),
		scanner.WithMode(modeOf(opts)),
		scanner.WithSort(opts.sort),
		scanner.WithWorkers(opts.workers),
		scanner.WithLogger(logger),
		scanner.WithReporter(report.NewSink(stdout, cmd.ErrOrStderr(), renderer)),
	)
	if err != nil {
		return ExitError, err
	}

	logger.Debug("scan finished",
		"files", result.Stats.FilesScanned,
		"checked", result.Stats.FilesChecked,
		"skipped", result.Stats.FilesSkipped,
		"failed", result.Stats.FilesFailed,
		"typos", result.Stats.TyposFound,
		"fixed", result.Stats.TyposFixed,
		"duration", result.Stats.Duration,
	)

	if result.TypoCount() > 0 {
		return ExitTypos, nil
	}
	return ExitOK, nil
}

func modeOf(opts *options) scanner.Mode {
	switch {
	case opts.files:
		return scanner.ModeFiles
	case opts.strings:
		return scanner.ModeStrings
	case opts.writeChanges:
		return scanner.ModeWrite
	default:
		return scanner.ModeCheck
	}
}

func printTypeList(w io.Writer, registry *framework.Registry) {
	for _, def := range registry.All() {
		fmt.Fprintf(w, "%s: %s\n", def.Name, strings.Join(def.Detections, ", "))
	}
}

func dumpConfig(cfg *config.Config, output string, stdout io.Writer) error {
	if output == "-" {
		return cfg.Dump(stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := cfg.Dump(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// colorEnabled resolves --color. In auto mode, color is used on terminals unless NO_COLOR is set.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("%w: %q", errUnknownColor, mode)
	}
}
