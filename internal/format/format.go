// Package format implements the value formatting mini-language.
//
// A value is copied verbatim except for two constructs:
//
//	\X                       copies X literally
//	%<n><op><d><argument><d>  applies op to the formatted argument
//
// The delimiter d is any 7-bit byte and ends the argument at its next
// occurrence, so nested commands need a different delimiter:
//
//	%2z~%1c/7,8/~   →  "07"
//
// The optional decimal quantifier n defaults to 0. See Ops for the operators.
package format

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/simonhull/kvtag/internal/translit"
	"github.com/simonhull/kvtag/internal/types"
)

// MaxFilenameSize is the longest result the f operator accepts, in bytes.
const MaxFilenameSize = 255

// Node is either literal text or an operator call.
type Node struct {
	Text       string // literal text, used when Op is 0
	Quantifier string
	Arg        Expr
	Op         byte
}

// Expr is a parsed format string.
type Expr []Node

func valueError(reason, value string) error {
	return &types.ValueError{Stage: "format", Reason: reason, Value: value}
}

type parseState int

const (
	statePlain parseState = iota
	stateVerbatim
	stateQuantifier
	stateDelimiter
	stateArgument
)

// Parse builds the expression tree of text. Arguments are parsed
// recursively.
func Parse(text string) (Expr, error) {
	var (
		expr    Expr
		lit     strings.Builder
		st      = statePlain
		call    Node
		delim   byte
		argFrom int
	)

	flush := func() {
		if lit.Len() > 0 {
			expr = append(expr, Node{Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch st {
		case statePlain:
			switch c {
			case '\\':
				st = stateVerbatim
			case '%':
				flush()
				call = Node{}
				argFrom = i + 1
				st = stateQuantifier
			default:
				lit.WriteByte(c)
			}

		case stateVerbatim:
			lit.WriteByte(c)
			st = statePlain

		case stateQuantifier:
			if c >= '0' && c <= '9' {
				continue
			}
			call.Quantifier = text[argFrom:i]
			call.Op = c
			st = stateDelimiter

		case stateDelimiter:
			if c > 127 {
				return nil, valueError("delimiters must be 7-bit values", text)
			}
			delim = c
			argFrom = i + 1
			st = stateArgument

		case stateArgument:
			if c != delim {
				continue
			}
			arg, err := Parse(text[argFrom:i])
			if err != nil {
				return nil, err
			}
			call.Arg = arg
			expr = append(expr, call)
			st = statePlain
		}
	}

	if st != statePlain {
		return nil, valueError("invalid syntax", text)
	}
	flush()
	return expr, nil
}

// Eval evaluates the expression.
func (e Expr) Eval() (string, error) {
	var b strings.Builder
	for _, n := range e {
		if n.Op == 0 {
			b.WriteString(n.Text)
			continue
		}
		arg, err := n.Arg.Eval()
		if err != nil {
			return "", err
		}
		out, err := apply(n.Op, n.Quantifier, arg)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// String formats text.
func String(text string) (string, error) {
	expr, err := Parse(text)
	if err != nil {
		return "", err
	}
	return expr.Eval()
}

// Op is an operator implementation. n is the quantifier.
type Op func(n int, arg string) (string, error)

// Ops maps operator characters to their implementation.
var Ops = map[byte]Op{
	'z': func(n int, arg string) (string, error) { return PadLeft(arg, n, '0'), nil },
	'Z': func(n int, arg string) (string, error) { return PadRight(arg, n, '0'), nil },
	'c': func(n int, arg string) (string, error) { return Field(arg, ",", n), nil },
	's': func(n int, arg string) (string, error) { return Field(arg, ";", n), nil },
	't': func(_ int, arg string) (string, error) { return Trim(arg), nil },
	'q': func(_ int, arg string) (string, error) { return Squeeze(arg), nil },
	'f': func(_ int, arg string) (string, error) { return Filename(arg) },
}

func apply(op byte, quantifier, arg string) (string, error) {
	n := 0
	if quantifier != "" {
		v, err := strconv.ParseUint(quantifier, 10, 32)
		if err != nil {
			return "", valueError("invalid number", quantifier)
		}
		n = int(v)
	}
	fn, ok := Ops[op]
	if !ok {
		return "", valueError("unknown command", "%"+string(op))
	}
	return fn(n, arg)
}

// PadLeft prepends pad until s is at least width bytes long.
func PadLeft(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}

// PadRight appends pad until s is at least width bytes long.
func PadRight(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-len(s))
}

// Field returns the n-th (1-based) sep separated field of s, or "" if there
// is no such field.
func Field(s, sep string, n int) string {
	if n <= 0 {
		return ""
	}
	fields := strings.Split(s, sep)
	if n > len(fields) {
		return ""
	}
	return fields[n-1]
}

const blanks = "\t\n\r "

func isBlank(r rune) bool {
	return strings.ContainsRune(blanks, r)
}

// Trim drops leading and trailing blanks.
func Trim(s string) string {
	return strings.Trim(s, blanks)
}

// Squeeze trims s and replaces inner runs of blanks by a single space.
func Squeeze(s string) string {
	return strings.Join(strings.FieldsFunc(s, isBlank), " ")
}

// Filename turns s into a portable file name: transliterated to lower-case
// ASCII, runs of other characters replaced by a single underscore, no
// underscore at either end.
func Filename(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", valueError("invalid UTF-8 encoding", s)
	}
	plain := translit.String(s)
	name := strings.Join(strings.FieldsFunc(plain, func(r rune) bool { return r == '_' }), "_")
	if len(name) > MaxFilenameSize {
		return "", valueError("filename is too long", name)
	}
	return name, nil
}
