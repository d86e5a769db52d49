// Package parser turns KEY=VALUE tag streams into handler events.
//
// The input has one assignment per line. Keys match [A-Za-z_][A-Za-z0-9_]*,
// the value is the rest of the line taken verbatim. Lines starting with '#'
// (after optional blanks) are comments, empty lines are ignored. Escaping,
// substitution and formatting are the job of later stages.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/source"
	"github.com/simonhull/kvtag/internal/types"
)

// Parser reads tag streams and drives a handler chain.
type Parser struct {
	handler  chain.Handler
	reporter diag.Reporter
	log      *zap.Logger
	stdin    io.Reader
}

// Option configures a Parser.
type Option func(*Parser)

// WithReporter sets where syntax and I/O errors are reported.
func WithReporter(r diag.Reporter) Option {
	return func(p *Parser) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithLogger enables debug tracing of stream boundaries.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithStdin replaces os.Stdin as the stream read by ParseStdin.
func WithStdin(r io.Reader) Option {
	return func(p *Parser) {
		if r != nil {
			p.stdin = r
		}
	}
}

// New returns a parser feeding h.
func New(h chain.Handler, opts ...Option) *Parser {
	p := &Parser{
		handler:  h,
		reporter: diag.Nop{},
		log:      zap.NewNop(),
		stdin:    os.Stdin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses the named file. The stream carries the file name.
//
// A file that cannot be opened is reported and still produces a begin and a
// failed end event, so renderers see every requested source.
func (p *Parser) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return p.failOpen(&types.OpenError{Source: path, Err: err})
	}
	defer f.Close()

	return p.ParseReader(path, f)
}

// ParseStdin parses standard input under the name "-".
func (p *Parser) ParseStdin() error {
	return p.ParseReader(source.Stdin, p.stdin)
}

// ParseSource parses preloaded content.
func (p *Parser) ParseSource(s source.Source) error {
	if s.Err != nil {
		var oe *types.OpenError
		if !errors.As(s.Err, &oe) {
			oe = &types.OpenError{Source: s.Name, Err: s.Err}
		}
		return p.failOpen(oe)
	}
	return p.ParseReader(s.Name, s.Reader())
}

// ParseReader parses r as a stream called name.
//
// The returned error is nil on success. Syntax errors are *types.ParseError;
// when a stage stopped the chain the result is types.ErrUnhealthy and the
// stage has already reported why. Every error is reported before it is
// returned.
func (p *Parser) ParseReader(name string, r io.Reader) error {
	p.log.Debug("begin stream", zap.String("source", name))
	p.handler.OnBegin(name)

	err := p.scan(name, bufio.NewReader(r))

	p.handler.OnEnd(err == nil)
	p.log.Debug("end stream", zap.String("source", name), zap.Bool("ok", err == nil))
	return err
}

func (p *Parser) failOpen(err *types.OpenError) error {
	p.handler.OnBegin(err.Source)
	p.reporter.Error(err)
	p.handler.OnEnd(false)
	return err
}

type state int

const (
	stateFirst state = iota
	stateKey
	stateValue
	stateComment
	stateCorrupted
)

func isKeyStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isKeyChar(c byte) bool {
	return isKeyStart(c) || (c >= '0' && c <= '9')
}

func (p *Parser) scan(name string, r io.ByteReader) error {
	var (
		key   []byte
		value []byte
		st    = stateFirst
		line  = 1
	)

	syntax := func(reason string, c ...byte) error {
		err := &types.ParseError{Source: name, Line: line, Reason: reason, Char: string(c)}
		p.reporter.Error(err)
		return err
	}

	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			err = fmt.Errorf("%s line %d: read failed: %w", name, line, err)
			p.reporter.Error(err)
			return err
		}

		if !p.handler.Healthy() {
			st = stateCorrupted
			break
		}

		switch st {
		case stateFirst:
			switch {
			case c == '\n':
				line++
			case c == '#':
				st = stateComment
			case isKeyStart(c):
				key = append(key, c)
				st = stateKey
			case c == '\t' || c == ' ':
			default:
				return syntax("a key must not start with this character", c)
			}

		case stateKey:
			switch {
			case c == '\n':
				return syntax("end of line not allowed here")
			case c == '=':
				if len(key) == 0 {
					return syntax("empty key found")
				}
				st = stateValue
			case isKeyChar(c):
				key = append(key, c)
			default:
				return syntax("a key must not contain this character", c)
			}

		case stateValue:
			if c != '\n' {
				value = append(value, c)
				continue
			}
			p.handler.OnData(string(key), string(value))
			key, value = key[:0], value[:0]
			line++
			st = stateFirst

		case stateComment:
			if c == '\n' {
				line++
				st = stateFirst
			}
		}
	}

	switch {
	case st == stateCorrupted:
		return types.ErrUnhealthy
	case st != stateFirst:
		return syntax("unexpected end of stream")
	case !p.handler.Healthy():
		return types.ErrUnhealthy
	default:
		return nil
	}
}
