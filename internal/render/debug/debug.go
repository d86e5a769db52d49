// Package debug renders every pipeline event as it arrives.
package debug

import (
	"fmt"
	"io"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/config"
	"github.com/simonhull/kvtag/internal/registry"
	"github.com/simonhull/kvtag/internal/types"
)

func init() {
	registry.Register(types.ModeDebug, func(w io.Writer, _ *config.Config) chain.Handler {
		return New(w)
	})
}

// Renderer prints events in call notation, one per line.
type Renderer struct {
	chain.Link
	w   io.Writer
	err error
}

// New returns a debug renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Err returns the first write error.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) print(e chain.Event) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.w, e); err != nil {
		r.err = err
		r.SetHealthy(false)
	}
}

// OnBegin implements chain.Handler.
func (r *Renderer) OnBegin(source string) {
	r.Link.OnBegin(source)
	r.err = nil
	r.print(chain.Begin(source))
}

// OnEnd implements chain.Handler.
func (r *Renderer) OnEnd(ok bool) {
	r.print(chain.End(ok))
}

// OnData implements chain.Handler.
func (r *Renderer) OnData(key, value string) {
	r.print(chain.Data(key, value))
}
