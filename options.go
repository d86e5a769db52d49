package kvtag

import (
	"io"

	"go.uber.org/zap"
)

// Option configures a Pipeline.
//
// Example:
//
//	rec := &kvtag.Recorder{}
//	p := kvtag.New(sink,
//	    kvtag.WithReporter(rec),
//	    kvtag.WithConcurrency(4),
//	)
type Option func(*options)

type options struct {
	reporter    Reporter
	log         *zap.Logger
	stdin       io.Reader
	concurrency int // 0 = runtime.NumCPU()
}

func defaultOptions() *options {
	return &options{
		log: zap.NewNop(),
	}
}

// WithReporter sets where errors and warnings go.
//
// By default diagnostics are logged through the logger given with
// WithLogger, which discards everything unless set.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithLogger sets the logger used for debug tracing and, unless WithReporter
// is given, for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStdin replaces os.Stdin as the source of ParseStdin and of "-" in
// ParseMany.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithConcurrency limits how many files ParseMany reads at once.
//
// Default is 0 (one per CPU). Parsing itself is always sequential.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}
