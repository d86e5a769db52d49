package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/types"
)

func TestTracks_EmitsOnTrigger(t *testing.T) {
	var got [][]types.Pair
	var sources []string
	tr := NewTracks(func(source string, track *types.Record) error {
		sources = append(sources, source)
		got = append(got, track.Pairs())
		return nil
	})

	chain.Replay(tr,
		chain.Begin("album.tags"),
		chain.Data("TITLE", "One"),
		chain.Data("COMPILATIONINDEX", "1"),
		chain.Data("TITLE", "Two"),
		chain.Data("COMPILATIONINDEX", "2"),
		chain.Data("TITLE", "dangling"),
		chain.End(true),
	)

	require.Len(t, got, 2)
	assert.Equal(t, []types.Pair{{Key: "TITLE", Value: "One"}, {Key: "COMPILATIONINDEX", Value: "1"}}, got[0])
	assert.Equal(t, []types.Pair{{Key: "TITLE", Value: "Two"}, {Key: "COMPILATIONINDEX", Value: "2"}}, got[1])
	assert.Equal(t, []string{"album.tags", "album.tags"}, sources)
	assert.True(t, tr.Healthy())
}

func TestTracks_EmitErrorTurnsUnhealthy(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	tr := NewTracks(func(string, *types.Record) error {
		calls++
		return boom
	})

	chain.Replay(tr,
		chain.Begin("a"),
		chain.Data("COMPILATIONINDEX", "1"),
		chain.Data("COMPILATIONINDEX", "2"),
	)
	assert.Equal(t, 1, calls)
	assert.False(t, tr.Healthy())
	assert.ErrorIs(t, tr.Err(), boom)

	tr.OnBegin("b")
	assert.True(t, tr.Healthy())
	assert.NoError(t, tr.Err())
	assert.Equal(t, "b", tr.Source())
}

func TestTracks_BeginDropsPartialTrack(t *testing.T) {
	var got []types.Pair
	tr := NewTracks(func(_ string, track *types.Record) error {
		got = track.Pairs()
		return nil
	})

	chain.Replay(tr,
		chain.Begin("a"),
		chain.Data("TITLE", "stale"),
		chain.Begin("b"),
		chain.Data("COMPILATIONINDEX", "1"),
	)
	assert.Equal(t, []types.Pair{{Key: "COMPILATIONINDEX", Value: "1"}}, got)
}

func TestOrders(t *testing.T) {
	assert.Len(t, VerboseOrder, keys.Count)
	assert.Len(t, DBaseOrder, keys.Count)
	assert.ElementsMatch(t, VerboseOrder, DBaseOrder)

	for _, key := range CommentOrder {
		assert.True(t, keys.IsVorbisComment(key), key)
	}
	assert.NotContains(t, CommentOrder, "FILENAME")
	assert.NotContains(t, CommentOrder, "IMAGE")
}

func TestTracks_OnlyCompilationIndexCompletes(t *testing.T) {
	assert.Equal(t, keys.CompilationIndex.Name(), trigger)

	calls := 0
	tr := NewTracks(func(string, *types.Record) error {
		calls++
		return nil
	})
	chain.Replay(tr,
		chain.Begin("a"),
		chain.Data("TITLE", "One"),
		chain.Data("TRACKNUMBER", "1"),
	)
	assert.Zero(t, calls)
}
