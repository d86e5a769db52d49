// Package filter rejects assignments to keys a tag file may not write.
package filter

import (
	"strings"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/types"
)

// Stage passes a pair on if its key is writable or a user variable (leading
// underscore). Any other key stops the chain.
type Stage struct {
	chain.Link
	reporter diag.Reporter
}

// New returns a filter stage reporting to r.
func New(r diag.Reporter) *Stage {
	if r == nil {
		r = diag.Nop{}
	}
	return &Stage{reporter: r}
}

// Allowed reports whether a tag file may assign key.
func Allowed(key string) bool {
	return keys.IsWritable(key) || strings.HasPrefix(key, "_")
}

// OnData implements chain.Handler.
func (s *Stage) OnData(key, value string) {
	if s.Next() == nil || !s.Healthy() {
		return
	}
	if !Allowed(key) {
		s.reporter.Error(&types.KeyError{Key: key, Reason: "key is not writable"})
		s.SetHealthy(false)
		return
	}
	s.Next().OnData(key, value)
}
