// Package overview renders a human-readable listing of the tracks.
package overview

import (
	"fmt"
	"io"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/config"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/registry"
	"github.com/simonhull/kvtag/internal/render"
	"github.com/simonhull/kvtag/internal/types"
)

func init() {
	registry.Register(types.ModeOverview, func(w io.Writer, _ *config.Config) chain.Handler {
		return New(w, false)
	})
	registry.Register(types.ModeVerboseOverview, func(w io.Writer, _ *config.Config) chain.Handler {
		return New(w, true)
	})
}

// New returns an overview renderer. The verbose form adds every known key
// below the track line.
func New(w io.Writer, verbose bool) *render.Tracks {
	return render.NewTracks(func(_ string, track *types.Record) error {
		if err := Brief(w, track); err != nil {
			return err
		}
		if verbose {
			return Verbose(w, track)
		}
		return nil
	})
}

// Brief writes the one-line summary of a track:
//
//	123. ALBUMARTIST - ALBUM - [TRACKNUMBER] TITLE
//
// The track artist is added before the title when it differs from the album
// artist.
func Brief(w io.Writer, track *types.Record) error {
	albumArtist := track.Get(keys.AlbumArtist.Name())
	artist := track.Get(keys.Artist.Name())

	title := track.Get(keys.Title.Name())
	if artist != albumArtist {
		title = artist + " - " + title
	}

	_, err := fmt.Fprintf(w, "%3s. %s - %s - [%s] %s\n",
		track.Get(keys.CompilationIndex.Name()), albumArtist, track.Get(keys.Album.Name()),
		track.Get(keys.TrackNumber.Name()), title)
	return err
}

// Verbose writes every known key right-aligned, followed by an empty line.
func Verbose(w io.Writer, track *types.Record) error {
	for _, key := range render.VerboseOrder {
		if _, err := fmt.Fprintf(w, "%21s=%s\n", key, track.Get(key)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
