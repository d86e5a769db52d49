// Package dbase renders one flat database line per track.
//
//	|CDFILE=album.tags|COMPILATIONID=...|...|FILENAME=...|
package dbase

import (
	"io"
	"strings"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/config"
	"github.com/simonhull/kvtag/internal/registry"
	"github.com/simonhull/kvtag/internal/render"
	"github.com/simonhull/kvtag/internal/types"
)

func init() {
	registry.Register(types.ModeDBase, func(w io.Writer, _ *config.Config) chain.Handler {
		return New(w)
	})
}

// New returns a database line renderer.
func New(w io.Writer) *render.Tracks {
	return render.NewTracks(func(source string, track *types.Record) error {
		_, err := io.WriteString(w, Line(source, track))
		return err
	})
}

// Line formats a track of source, including the trailing newline.
func Line(source string, track *types.Record) string {
	var b strings.Builder
	b.WriteString("|CDFILE=")
	b.WriteString(source)
	for _, key := range render.DBaseOrder {
		b.WriteByte('|')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(track.Get(key))
	}
	b.WriteString("|\n")
	return b.String()
}
