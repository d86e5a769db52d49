// Package keys holds the registry of known tag keys.
//
// Every key a tag file may assign is listed here together with two
// attributes: whether a tag file may write it, and whether it ends up as a
// Vorbis comment in the encoded FLAC file. Keys starting with an underscore
// are user variables; they are always writable and never a comment.
package keys

import (
	"fmt"
	"io"
	"iter"
)

// ID identifies a known key.
type ID int

// Known keys, in alphabetical order.
const (
	Album ID = iota
	AlbumArtist
	Arranger
	Artist
	Author
	Comment
	CompilationID
	CompilationIndex
	Composer
	Conductor
	Date
	Ensemble
	Filename
	Genre
	Image
	Lyricist
	Opus
	Performer
	Title
	TrackNumber
	TrackTotal
	Version

	// Count is the number of known keys.
	Count int = iota
)

// MaxNameSize is the length of the longest known key name.
const MaxNameSize = 16

type info struct {
	name     string
	note     string
	writable bool
	comment  bool
}

const (
	noteResetTrack = "this key resets TRACKNUMBER to 1"
	noteAutomatic  = "always passed along with TITLE; automatically increased by TITLE (after printing)"
)

var table = [Count]info{
	Album:            {name: "ALBUM", writable: true, comment: true, note: noteResetTrack},
	AlbumArtist:      {name: "ALBUMARTIST", writable: true, comment: true},
	Arranger:         {name: "ARRANGER", writable: true, comment: true},
	Artist:           {name: "ARTIST", writable: true, comment: true},
	Author:           {name: "AUTHOR", writable: true, comment: true},
	Comment:          {name: "COMMENT", writable: true, comment: true},
	CompilationID:    {name: "COMPILATIONID", writable: true, comment: true, note: "this key resets COMPILATIONINDEX to 1"},
	CompilationIndex: {name: "COMPILATIONINDEX", writable: false, comment: true, note: noteAutomatic},
	Composer:         {name: "COMPOSER", writable: true, comment: true},
	Conductor:        {name: "CONDUCTOR", writable: true, comment: true},
	Date:             {name: "DATE", writable: true, comment: true},
	Ensemble:         {name: "ENSEMBLE", writable: true, comment: true},
	Filename:         {name: "FILENAME", writable: true, comment: false},
	Genre:            {name: "GENRE", writable: true, comment: true},
	Image:            {name: "IMAGE", writable: true, comment: false, note: "the filename of the image that will be included as cover (front)"},
	Lyricist:         {name: "LYRICIST", writable: true, comment: true},
	Opus:             {name: "OPUS", writable: true, comment: true, note: noteResetTrack},
	Performer:        {name: "PERFORMER", writable: true, comment: true},
	Title:            {name: "TITLE", writable: true, comment: true, note: "this key prints the current stack and increases TRACKNUMBER and COMPILATIONINDEX afterwards"},
	TrackNumber:      {name: "TRACKNUMBER", writable: true, comment: true, note: noteAutomatic},
	TrackTotal:       {name: "TRACKTOTAL", writable: true, comment: true},
	Version:          {name: "VERSION", writable: true, comment: true},
}

var byName = func() map[string]ID {
	m := make(map[string]ID, Count)
	for id := range ID(Count) {
		m[table[id].name] = id
	}
	return m
}()

// Defined reports whether id names a known key.
func (id ID) Defined() bool {
	return id >= 0 && int(id) < Count
}

// Name returns the key as written in tag files, or "" for an unknown id.
func (id ID) Name() string {
	if !id.Defined() {
		return ""
	}
	return table[id].name
}

func (id ID) String() string {
	if !id.Defined() {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return table[id].name
}

// Writable reports whether tag files may assign the key.
func (id ID) Writable() bool {
	return id.Defined() && table[id].writable
}

// Comment reports whether the key is stored as a Vorbis comment.
func (id ID) Comment() bool {
	return id.Defined() && table[id].comment
}

// Note returns the explanation shown next to the key in the key listing.
func (id ID) Note() string {
	if !id.Defined() {
		return ""
	}
	return table[id].note
}

// Lookup returns the id of a key name. Names are case-sensitive.
func Lookup(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// IsDefined reports whether name is a known key.
func IsDefined(name string) bool {
	_, ok := byName[name]
	return ok
}

// IsWritable reports whether a tag file may assign name. Unknown keys are
// not writable; user variables are handled by the writability filter.
func IsWritable(name string) bool {
	id, ok := byName[name]
	return ok && id.Writable()
}

// IsVorbisComment reports whether name is stored as a Vorbis comment.
func IsVorbisComment(name string) bool {
	id, ok := byName[name]
	return ok && id.Comment()
}

// All returns an iterator over all known keys in id order.
func All() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for id := range ID(Count) {
			if !yield(id) {
				return
			}
		}
	}
}

// WriteTable prints the key listing: name, W for writable, C for comment and
// the key's note, followed by the rule for user variables.
func WriteTable(w io.Writer) error {
	for id := range All() {
		flags := []byte("--")
		if id.Writable() {
			flags[0] = 'W'
		}
		if id.Comment() {
			flags[1] = 'C'
		}
		line := fmt.Sprintf("%-*s [%s]", MaxNameSize, id.Name(), flags)
		if note := id.Note(); note != "" {
			line += " " + note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-*s [W-] any other key has to start with an underscore\n", MaxNameSize, "_ANYOTHERKEY")
	return err
}
