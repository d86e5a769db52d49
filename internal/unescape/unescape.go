// Package unescape removes backslash escapes from values.
package unescape

import (
	"strings"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/types"
)

// String replaces every \X by X. A trailing lone backslash is an error.
func String(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteByte(c)
	}
	if escaped {
		return "", &types.ValueError{Stage: "unescape", Reason: "invalid syntax", Value: s}
	}
	return b.String(), nil
}

// Stage unescapes every value it forwards.
type Stage struct {
	chain.Link
	reporter diag.Reporter
}

// New returns an unescape stage reporting to r.
func New(r diag.Reporter) *Stage {
	if r == nil {
		r = diag.Nop{}
	}
	return &Stage{reporter: r}
}

// OnData implements chain.Handler.
func (s *Stage) OnData(key, value string) {
	if s.Next() == nil || !s.Healthy() {
		return
	}
	v, err := String(value)
	if err != nil {
		s.reporter.Error(err)
		s.SetHealthy(false)
		return
	}
	s.Next().OnData(key, v)
}
