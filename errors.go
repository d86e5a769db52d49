package kvtag

import (
	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/types"
)

// Handler receives the events of a tag stream. Renderers and custom sinks
// implement it.
type Handler = chain.Handler

// Reporter receives errors and warnings from the pipeline.
type Reporter = diag.Reporter

// Recorder is a Reporter that keeps every diagnostic in memory.
type Recorder = diag.Recorder

// Record is an ordered list of key/value pairs.
type Record = types.Record

// Pair is a single key/value assignment.
type Pair = types.Pair

// Warning is a non-fatal issue found while processing a stream.
type Warning = types.Warning

// ParseError is a syntax error in a tag stream.
type ParseError = types.ParseError

// OpenError reports a tag file that could not be read.
type OpenError = types.OpenError

// KeyError reports a key that must not be written.
type KeyError = types.KeyError

// ValueError reports a value a stage could not process.
type ValueError = types.ValueError

var (
	// ErrUnhealthy is returned when a stage stopped the stream.
	ErrUnhealthy = types.ErrUnhealthy

	// ErrUnresolved is reported when substitution does not converge.
	ErrUnresolved = types.ErrUnresolved
)
