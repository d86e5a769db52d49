package kvtag

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/filter"
	"github.com/simonhull/kvtag/internal/format"
	"github.com/simonhull/kvtag/internal/parser"
	"github.com/simonhull/kvtag/internal/replace"
	"github.com/simonhull/kvtag/internal/source"
	"github.com/simonhull/kvtag/internal/stack"
	"github.com/simonhull/kvtag/internal/unescape"
)

// Stdin is the file name that stands for standard input in ParseMany.
const Stdin = source.Stdin

// Pipeline parses tag streams and runs them through the processing stages
// into a sink.
//
// A Pipeline is not safe for concurrent use. Streams are processed one after
// the other; every stream starts with a fresh state.
type Pipeline struct {
	head   chain.Handler
	parser *parser.Parser
	opts   *options
}

// New returns a pipeline feeding sink. A nil sink discards all tracks.
//
// Example:
//
//	sink, _ := kvtag.NewRenderer(kvtag.ModeOverview, os.Stdout, nil)
//	p := kvtag.New(sink, kvtag.WithLogger(logger))
func New(sink Handler, opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newPipeline(sink, o)
}

func newPipeline(sink Handler, o *options) *Pipeline {
	rep := o.reporter
	if rep == nil {
		rep = diag.NewZap(o.log)
	}
	if sink == nil {
		sink = &chain.Link{}
	}

	// Stages are freshly allocated, so Connect can only fail on a nil sink,
	// which was replaced above.
	head, err := chain.Connect(sink,
		filter.New(rep),
		stack.New(rep),
		replace.New(rep),
		format.NewStage(rep),
		unescape.New(rep),
	)
	if err != nil {
		panic(err)
	}

	popts := []parser.Option{parser.WithReporter(rep), parser.WithLogger(o.log)}
	if o.stdin != nil {
		popts = append(popts, parser.WithStdin(o.stdin))
	}

	return &Pipeline{
		head:   head,
		parser: parser.New(head, popts...),
		opts:   o,
	}
}

// ParseFile processes the named tag file.
//
// The error is nil on success. Everything that went wrong has already been
// sent to the Reporter, so callers usually only need to test for failure.
func (p *Pipeline) ParseFile(path string) error {
	return p.parser.ParseFile(path)
}

// ParseReader processes r as a stream called name.
func (p *Pipeline) ParseReader(name string, r io.Reader) error {
	return p.parser.ParseReader(name, r)
}

// ParseStdin processes standard input as a stream called "-".
func (p *Pipeline) ParseStdin() error {
	return p.parser.ParseStdin()
}

// ParseMany processes several tag files in order. Stdin ("-") may appear
// among them.
//
// Files are read concurrently (see WithConcurrency) but the stages see them
// strictly one after the other, in the given order. A failing file does not
// stop the others; the result joins the errors of all failed files.
// Cancelling ctx stops before the next file.
func (p *Pipeline) ParseMany(ctx context.Context, paths ...string) error {
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		if path != Stdin {
			files = append(files, path)
		}
	}

	loaded, err := source.LoadMany(ctx, p.opts.concurrency, files...)
	if err != nil {
		return err
	}

	var errs []error
	next := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if path == Stdin {
			err = p.parser.ParseStdin()
		} else {
			err = p.parser.ParseSource(loaded[next])
			next++
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Healthy reports whether the last stream passed every stage.
func (p *Pipeline) Healthy() bool {
	return p.head.Healthy()
}
