// Package replace expands $NAME and ${NAME} references between the values
// of one track.
//
// A value may refer to any key of the same track, including user variables:
//
//	_DISC=2
//	ALBUM=Live (Disc ${_DISC})
//
// References are resolved repeatedly until every value is final. A reference
// to a value that still contains references is left for a later pass, so
// chains resolve in any order while cycles are detected as lack of progress.
package replace

import (
	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/types"
)

// trigger is the key that completes a track.
var trigger = keys.CompilationIndex.Name()

func isIDChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

type splitState int

const (
	readPrefix splitState = iota
	readEscape
	checkID
	readPlainID
	readCurlyID
)

// Split cuts s around its first reference. A backslash protects the next
// byte; both stay in the prefix. id is empty when s contains no reference.
func Split(s string) (prefix, id, suffix string, err error) {
	st := readPrefix
	idStart := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch st {
		case readPrefix:
			switch c {
			case '\\':
				st = readEscape
			case '$':
				prefix = s[:i]
				st = checkID
			}
		case readEscape:
			st = readPrefix
		case checkID:
			switch {
			case c == '{':
				idStart = i + 1
				st = readCurlyID
			case isIDChar(c):
				idStart = i
				st = readPlainID
			default:
				return "", "", "", syntaxError(s)
			}
		case readPlainID:
			if !isIDChar(c) {
				return prefix, s[idStart:i], s[i:], nil
			}
		case readCurlyID:
			switch {
			case c == '}':
				return prefix, s[idStart:i], s[i+1:], nil
			case !isIDChar(c):
				return "", "", "", syntaxError(s)
			}
		}
	}

	switch st {
	case readPrefix:
		return s, "", "", nil
	case readPlainID:
		return prefix, s[idStart:], "", nil
	default:
		return "", "", "", syntaxError(s)
	}
}

func syntaxError(s string) error {
	return &types.ValueError{Stage: "replace", Reason: "invalid syntax", Value: s}
}

// IsFinal reports whether s is free of references and syntax errors.
func IsFinal(s string) bool {
	_, id, _, err := Split(s)
	return err == nil && id == ""
}

// Resolve expands all references in rec in place.
//
// Missing keys expand to the empty string. Every empty expansion produces a
// warning. A syntax error aborts immediately; references that never become
// final return types.ErrUnresolved.
func Resolve(rec *types.Record) ([]types.Warning, error) {
	var warnings []types.Warning

	pending, updated := true, true
	for pending && updated {
		pending, updated = false, false
		for i := range rec.Len() {
			prefix, id, suffix, err := Split(rec.At(i).Value)
			if err != nil {
				return warnings, err
			}
			if id == "" {
				continue
			}
			pending = true

			paste := rec.Get(id)
			if paste == "" {
				warnings = append(warnings, types.Warning{Stage: "replace", Message: "empty substitution: $" + id})
			}
			if IsFinal(paste) {
				rec.Set(i, prefix+paste+suffix)
				updated = true
			}
		}
	}

	if pending {
		return warnings, types.ErrUnresolved
	}
	return warnings, nil
}

// Stage buffers one track, resolves it and passes it on.
type Stage struct {
	chain.Link
	reporter diag.Reporter
	buf      types.Record
}

// New returns a substitution stage reporting to r.
func New(r diag.Reporter) *Stage {
	if r == nil {
		r = diag.Nop{}
	}
	return &Stage{reporter: r}
}

// OnBegin implements chain.Handler.
func (s *Stage) OnBegin(source string) {
	s.buf.Reset()
	s.Link.OnBegin(source)
}

// OnEnd implements chain.Handler.
func (s *Stage) OnEnd(ok bool) {
	s.buf.Reset()
	s.Link.OnEnd(ok)
}

// OnData implements chain.Handler.
func (s *Stage) OnData(key, value string) {
	if s.Next() == nil || !s.Healthy() {
		return
	}

	s.buf.Add(key, value)
	if key != trigger {
		return
	}
	defer s.buf.Reset()

	warnings, err := Resolve(&s.buf)
	for _, w := range warnings {
		s.reporter.Warn(w)
	}
	if err != nil {
		s.reporter.Error(err)
		s.SetHealthy(false)
		return
	}

	for k, v := range s.buf.All() {
		if !s.Forward(k, v) {
			s.SetHealthy(false)
			return
		}
	}
}
