// Package stack assembles track records from a flat stream of assignments.
//
// Tag files describe a compilation top-down: album wide keys first, then a
// TITLE per track, with any key redefinable between tracks. The stage keeps
// every assignment on a stack. Redefining a key drops it and everything
// pushed after it, so outer settings survive while inner ones are replaced.
// Each TITLE emits the whole stack as one track, numbered automatically.
package stack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/types"
)

// LargeTrackNumber is the highest track number accepted without a warning.
const LargeTrackNumber = 999

var (
	keyTitle            = keys.Title.Name()
	keyTrackNumber      = keys.TrackNumber.Name()
	keyCompilationID    = keys.CompilationID.Name()
	keyCompilationIndex = keys.CompilationIndex.Name()
	keyAlbum            = keys.Album.Name()
	keyOpus             = keys.Opus.Name()
)

// Stage is the record assembler.
type Stage struct {
	chain.Link
	reporter diag.Reporter
	stack    types.Record
	track    uint64
	index    uint64
}

// New returns an assembler reporting to r.
func New(r diag.Reporter) *Stage {
	if r == nil {
		r = diag.Nop{}
	}
	return &Stage{reporter: r, track: 1, index: 1}
}

// TrackNumber returns the number the next track will get.
func (s *Stage) TrackNumber() uint64 { return s.track }

// CompilationIndex returns the index the next track will get.
func (s *Stage) CompilationIndex() uint64 { return s.index }

// Pairs returns a copy of the current stack.
func (s *Stage) Pairs() []types.Pair { return s.stack.Pairs() }

// OnBegin implements chain.Handler.
func (s *Stage) OnBegin(source string) {
	s.stack.Reset()
	s.track, s.index = 1, 1
	s.Link.OnBegin(source)
}

// OnEnd implements chain.Handler.
func (s *Stage) OnEnd(ok bool) {
	s.stack.Reset()
	s.Link.OnEnd(ok)
}

// OnData implements chain.Handler.
func (s *Stage) OnData(key, value string) {
	if s.Next() == nil || !s.Healthy() {
		return
	}

	if i := s.stack.Index(key); i >= 0 {
		s.stack.Truncate(i)
	}
	if value == "" {
		return
	}

	switch key {
	case keyTrackNumber:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			s.reporter.Error(&types.ValueError{Stage: "stack", Reason: "invalid track number found", Value: value})
			s.SetHealthy(false)
			return
		}
		if n > LargeTrackNumber {
			s.reporter.Warn(types.Warning{Stage: "stack", Message: fmt.Sprintf("large track number found: %d", n)})
		}
		s.track = n

	case keyCompilationID:
		s.stack.Add(key, value)
		s.index = 1

	case keyAlbum, keyOpus:
		s.stack.Add(key, value)
		s.track = 1

	case keyTitle:
		s.stack.Add(key, value)
		s.flush()

	default:
		s.stack.Add(key, value)
	}
}

// flush emits the stack as one track and advances the counters.
func (s *Stage) flush() {
	s.stack.Delete(keyTrackNumber)
	s.stack.Delete(keyCompilationIndex)
	s.stack.Add(keyTrackNumber, strconv.FormatUint(s.track, 10))
	s.stack.Add(keyCompilationIndex, strconv.FormatUint(s.index, 10))

	for key, value := range s.stack.All() {
		if !s.Forward(key, value) {
			s.SetHealthy(false)
			return
		}
	}
	s.track++
	s.index++
}
