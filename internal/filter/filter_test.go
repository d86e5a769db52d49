package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/types"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"TITLE", true},
		{"FILENAME", true},
		{"_myvar", true},
		{"_", true},
		{"COMPILATIONINDEX", false},
		{"title", false},
		{"UNKNOWN", false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.key); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestStage(t *testing.T) {
	var rec diag.Recorder
	sink := chain.NewCollector("")
	head, err := chain.Connect(sink, New(&rec))
	require.NoError(t, err)

	chain.Replay(head,
		chain.Begin("src"),
		chain.Data("ARTIST", "a"),
		chain.Data("_x", "b"),
		chain.Data("COMPILATIONINDEX", "7"),
		chain.Data("TITLE", "never seen"),
		chain.End(false),
	)

	want := []chain.Event{
		chain.Begin("src"),
		chain.Data("ARTIST", "a"),
		chain.Data("_x", "b"),
		chain.End(false),
	}
	if diff := cmp.Diff(want, sink.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, head.Healthy())
	var ke *types.KeyError
	require.ErrorAs(t, rec.Err(), &ke)
	assert.Equal(t, "COMPILATIONINDEX", ke.Key)
	assert.Len(t, rec.Errors(), 1)
}

func TestStage_WithoutNext(t *testing.T) {
	var rec diag.Recorder
	s := New(&rec)
	s.OnBegin("src")
	s.OnData("BOGUS", "x")

	assert.True(t, s.Healthy(), "a filter without successor does nothing")
	assert.Empty(t, rec.Errors())
}
