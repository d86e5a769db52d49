// Package source loads tag files for batch processing.
//
// The pipeline itself is strictly sequential. When many files are given,
// reading them from disk is the only part that can overlap, so LoadMany
// reads them in parallel and hands them back in input order.
package source

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/kvtag/internal/types"
)

// Stdin is the name given to standard input.
const Stdin = "-"

// Source is the content of one tag file.
type Source struct {
	Err  error // set when the file could not be read
	Name string
	Data []byte
}

// Reader returns a reader over the loaded content.
func (s Source) Reader() io.Reader {
	return bytes.NewReader(s.Data)
}

// Load reads a single file. Read failures are stored in Source.Err as
// *types.OpenError.
func Load(path string) Source {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{Name: path, Err: &types.OpenError{Source: path, Err: err}}
	}
	return Source{Name: path, Data: data}
}

// LoadMany reads all paths using up to limit goroutines (runtime.NumCPU()
// when limit <= 0). Results are in the same order as paths.
//
// A file that cannot be read does not stop the others; its error is kept in
// the corresponding Source. Only cancellation of ctx aborts the batch.
func LoadMany(ctx context.Context, limit int, paths ...string) ([]Source, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]Source, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = Load(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadNames reads a list of file names from r, one per token of split.
// Empty tokens are skipped.
func ReadNames(r io.Reader, split bufio.SplitFunc) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Split(split)

	var names []string
	for sc.Scan() {
		if name := sc.Text(); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ScanNUL is a bufio.SplitFunc that splits on NUL bytes, the separator used
// by find -print0. A final token without a trailing NUL is returned as is.
func ScanNUL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[0:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
