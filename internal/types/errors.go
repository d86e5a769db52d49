package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnhealthy is returned when a stage further down the chain failed and
// processing stopped early. The failing stage has already reported the cause.
var ErrUnhealthy = errors.New("pipeline stopped by a failing stage")

// ErrUnresolved is reported when variable substitution cannot make progress
// because some references never become final (cycles, self references).
var ErrUnresolved = errors.New("unable to finish some values")

// ParseError is a syntax error found while scanning a tag stream.
type ParseError struct {
	Source string
	Reason string
	Char   string // offending character, empty if not applicable
	Line   int
}

func (e *ParseError) Error() string {
	if e.Char != "" {
		return fmt.Sprintf("%s line %d: %s: %s", e.Source, e.Line, e.Reason, strconv.Quote(e.Char))
	}
	return fmt.Sprintf("%s line %d: %s", e.Source, e.Line, e.Reason)
}

// OpenError is returned when a tag source cannot be read.
type OpenError struct {
	Source string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open file: %s: %v", strconv.Quote(e.Source), e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// KeyError is a semantic error about a key, e.g. a write to a read-only key.
type KeyError struct {
	Key    string
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, strconv.Quote(e.Key))
}

// ValueError is raised by a value-transforming stage when a value cannot be
// processed.
type ValueError struct {
	Stage  string // "stack", "replace", "format", "unescape"
	Reason string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, strconv.Quote(e.Value))
}

// Warning represents a non-fatal issue encountered while processing a stream.
//
// Warnings never stop the pipeline. Examples include:
//   - Track numbers above 999
//   - Substitutions that expand to an empty string
type Warning struct {
	// Stage where the warning occurred
	Stage string // "parser", "stack", "replace", "format"

	// Warning message
	Message string

	// Line of the input the warning refers to (0 if not applicable)
	Line int
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s (at line %d): %s", w.Stage, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
