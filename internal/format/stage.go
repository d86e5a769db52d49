package format

import (
	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
)

// Stage formats every value it forwards.
type Stage struct {
	chain.Link
	reporter diag.Reporter
}

// NewStage returns a formatting stage reporting to r.
func NewStage(r diag.Reporter) *Stage {
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
	out, err := String(value)
	if err != nil {
		s.reporter.Error(err)
		s.SetHealthy(false)
		return
	}
	s.Next().OnData(key, out)
}
