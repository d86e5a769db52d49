// Command kvtag converts tag files into flac conversion scripts, overviews
// and database lines.
//
// Usage:
//
//	kvtag [flags] [FILE...]
//
// With no FILE, the names of the tag files are read from standard input, one
// per line (NUL separated with -z). A FILE of "-" parses standard input
// itself.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/kvtag"
	"github.com/simonhull/kvtag/internal/logging"
	"github.com/simonhull/kvtag/internal/source"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type streams struct {
	in       io.Reader
	out, err io.Writer
}

type flags struct {
	dbase, overview, verbose, trace bool

	keys      bool
	null      bool
	config    string
	logLevel  string
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

// execute runs the command line and maps the result to an exit code.
func execute(ctx context.Context, args []string, s streams) int {
	cmd := newRootCmd(s)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: exitUsage, Message: err.Error()}
	}
	if exitErr.Message != "" {
		fmt.Fprintf(s.err, "kvtag: %s\n", exitErr.Message)
	}
	return exitErr.Code
}

func newRootCmd(s streams) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "kvtag [flags] [FILE...]",
		Short: "Turn KEY=VALUE tag files into flac conversion scripts",
		Long: `kvtag reads tag files describing audio CDs and prints, per file, a bash
script that converts the ripped wav tracks into tagged flac files.

With no FILE, file names are read from standard input, one per line or
NUL separated with -z. A FILE of "-" reads the tags from standard input.`,
		Version:       kvtag.GetVersionInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f, s)
		},
	}
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	})

	fl := cmd.Flags()
	fl.BoolVarP(&f.dbase, "dbase", "d", false, "print one database line per track")
	fl.BoolVarP(&f.overview, "overview", "o", false, "print a brief overview of the tracks")
	fl.BoolVarP(&f.verbose, "verbose-overview", "O", false, "print every key of every track")
	fl.BoolVarP(&f.trace, "trace", "t", false, "print every event reaching the output stage")
	fl.BoolVarP(&f.keys, "keys", "k", false, "list the known keys and exit")
	fl.BoolVarP(&f.null, "null", "z", false, "file names on standard input are NUL separated")
	fl.StringVar(&f.config, "config", "", "YAML configuration file")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fl.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
	cmd.MarkFlagsMutuallyExclusive("dbase", "overview", "verbose-overview", "trace")

	return cmd
}

func run(cmd *cobra.Command, args []string, f flags, s streams) error {
	if f.keys {
		if err := kvtag.WriteKeyTable(s.out); err != nil {
			return &ExitError{Code: exitFailure, Message: err.Error()}
		}
		return nil
	}

	cfg, err := kvtag.LoadConfig(f.config)
	if err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	switch {
	case f.dbase:
		cfg.Output = kvtag.ModeDBase
	case f.overview:
		cfg.Output = kvtag.ModeOverview
	case f.verbose:
		cfg.Output = kvtag.ModeVerboseOverview
	case f.trace:
		cfg.Output = kvtag.ModeDebug
	}
	if err := cfg.Validate(); err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}

	log, err := logging.New(cfg.Logging, s.err)
	if err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}
	defer func() { _ = log.Sync() }()

	paths := args
	if len(paths) == 0 {
		split := bufio.ScanLines
		if f.null {
			split = source.ScanNUL
		}
		if paths, err = source.ReadNames(s.in, split); err != nil {
			return &ExitError{Code: exitFailure, Message: err.Error()}
		}
	}

	sink, err := kvtag.NewRenderer(cfg.Output, s.out, cfg)
	if err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}

	log.Debug("processing tag files",
		zap.Int("files", len(paths)),
		zap.Stringer("output", cfg.Output))

	p := kvtag.New(sink, kvtag.WithLogger(log), kvtag.WithStdin(s.in))
	if err := p.ParseMany(cmd.Context(), paths...); err != nil {
		if errors.Is(err, context.Canceled) {
			return &ExitError{Code: exitFailure, Message: "interrupted"}
		}
		// Every failure has been logged by the stage that found it.
		log.Debug("processing failed", zap.Error(err))
		return &ExitError{Code: exitFailure}
	}
	return nil
}
