// Package render holds what the output renderers share: buffering of
// complete tracks and the key orders used for printing.
package render

import (
	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/types"
)

// trigger is the key that completes a track.
var trigger = keys.CompilationIndex.Name()

// EmitFunc receives a completed track of the stream called source.
type EmitFunc func(source string, track *types.Record) error

// Tracks is a terminal handler that collects pairs until the trigger key and
// hands every complete track to an EmitFunc. An emit error turns the handler
// unhealthy, which stops the parser.
type Tracks struct {
	chain.Link
	emit   EmitFunc
	err    error
	source string
	buf    types.Record
}

// NewTracks returns a track buffer calling emit.
func NewTracks(emit EmitFunc) *Tracks {
	return &Tracks{emit: emit}
}

// Source returns the name of the stream being processed.
func (t *Tracks) Source() string { return t.source }

// Err returns the first emit error of the current stream.
func (t *Tracks) Err() error { return t.err }

// OnBegin implements chain.Handler.
func (t *Tracks) OnBegin(source string) {
	t.Link.OnBegin(source)
	t.source = source
	t.err = nil
	t.buf.Reset()
}

// OnEnd implements chain.Handler.
func (t *Tracks) OnEnd(ok bool) {
	t.buf.Reset()
	t.Link.OnEnd(ok)
}

// OnData implements chain.Handler.
func (t *Tracks) OnData(key, value string) {
	if !t.Healthy() {
		return
	}
	t.buf.Add(key, value)
	if key != trigger {
		return
	}
	defer t.buf.Reset()

	if err := t.emit(t.source, &t.buf); err != nil {
		t.err = err
		t.SetHealthy(false)
	}
}

// Key orders used by the renderers.
var (
	// VerboseOrder is the order of the verbose overview.
	VerboseOrder = names(
		keys.Image, keys.CompilationID, keys.CompilationIndex, keys.Author, keys.Composer,
		keys.Lyricist, keys.Opus, keys.Version, keys.Arranger, keys.Performer, keys.Conductor,
		keys.Ensemble, keys.AlbumArtist, keys.Album, keys.Genre, keys.Date, keys.TrackTotal,
		keys.TrackNumber, keys.Artist, keys.Title, keys.Comment, keys.Filename,
	)

	// DBaseOrder is the column order of database lines.
	DBaseOrder = names(
		keys.CompilationID, keys.CompilationIndex, keys.Image, keys.Author, keys.Composer,
		keys.Lyricist, keys.Opus, keys.Version, keys.Arranger, keys.Performer, keys.Conductor,
		keys.Ensemble, keys.AlbumArtist, keys.Album, keys.Genre, keys.Date, keys.TrackTotal,
		keys.TrackNumber, keys.Artist, keys.Title, keys.Comment, keys.Filename,
	)

	// CommentOrder is the order in which Vorbis comments are written.
	CommentOrder = names(
		keys.CompilationID, keys.CompilationIndex, keys.Author, keys.Composer, keys.Lyricist,
		keys.Opus, keys.Version, keys.Arranger, keys.Performer, keys.Conductor, keys.Ensemble,
		keys.AlbumArtist, keys.Album, keys.Genre, keys.Date, keys.TrackTotal, keys.TrackNumber,
		keys.Artist, keys.Title, keys.Comment,
	)
)

func names(ids ...keys.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Name()
	}
	return out
}
