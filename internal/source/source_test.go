package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/simonhull/kvtag/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFiles(t *testing.T, n int) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("disc%d.tags", i))
		content := fmt.Sprintf("TITLE=Track %d\n", i)
		require.NoError(t, os.WriteFile(paths[i], []byte(content), 0o644))
	}
	return paths
}

func TestLoadMany_PreservesOrder(t *testing.T) {
	paths := writeFiles(t, 20)

	sources, err := LoadMany(context.Background(), 3, paths...)
	require.NoError(t, err)
	require.Len(t, sources, len(paths))

	for i, s := range sources {
		assert.Equal(t, paths[i], s.Name)
		assert.NoError(t, s.Err)
		assert.Equal(t, fmt.Sprintf("TITLE=Track %d\n", i), string(s.Data))
	}
}

func TestLoadMany_PartialFailure(t *testing.T) {
	paths := writeFiles(t, 2)
	missing := filepath.Join(t.TempDir(), "missing.tags")
	paths = []string{paths[0], missing, paths[1]}

	sources, err := LoadMany(context.Background(), 0, paths...)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.NoError(t, sources[0].Err)
	assert.NoError(t, sources[2].Err)

	var oe *types.OpenError
	require.ErrorAs(t, sources[1].Err, &oe)
	assert.Equal(t, missing, oe.Source)
	assert.True(t, errors.Is(sources[1].Err, os.ErrNotExist))
}

func TestLoadMany_Cancelled(t *testing.T) {
	paths := writeFiles(t, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources, err := LoadMany(ctx, 2, paths...)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sources)
}

func TestLoadMany_Empty(t *testing.T) {
	sources, err := LoadMany(context.Background(), 0)
	assert.NoError(t, err)
	assert.Nil(t, sources)
}

func TestReadNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		split bufio.SplitFunc
		want  []string
	}{
		{"nul separated", "a.tags\x00b c.tags\x00", ScanNUL, []string{"a.tags", "b c.tags"}},
		{"no trailing nul", "a.tags\x00b.tags", ScanNUL, []string{"a.tags", "b.tags"}},
		{"empty tokens skipped", "\x00\x00a.tags\x00", ScanNUL, []string{"a.tags"}},
		{"newline inside name", "with\nnewline\x00", ScanNUL, []string{"with\nnewline"}},
		{"lines", "a.tags\nb.tags\n", bufio.ScanLines, []string{"a.tags", "b.tags"}},
		{"empty input", "", ScanNUL, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadNames(strings.NewReader(tt.input), tt.split)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
