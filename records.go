package kvtag

import (
	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/keys"
)

// ReadRecords processes a tag file and returns its tracks.
//
// Every track holds the inherited values in declaration order followed by
// TRACKNUMBER and COMPILATIONINDEX. On failure the tracks completed before
// the error are returned with it. Warnings are returned in addition to being
// sent to a Reporter given with WithReporter.
//
// Example:
//
//	tracks, warnings, err := kvtag.ReadRecords("album.tags")
//	if err != nil {
//		return err
//	}
//	for _, w := range warnings {
//		log.Println(w)
//	}
func ReadRecords(path string, opts ...Option) ([]Record, []Warning, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	rec := &diag.Recorder{}
	if o.reporter != nil {
		o.reporter = diag.Tee(o.reporter, rec)
	} else {
		o.reporter = diag.Tee(diag.NewZap(o.log), rec)
	}

	sink := chain.NewCollector(keys.CompilationIndex.Name())
	err := newPipeline(sink, o).ParseFile(path)
	return sink.Records(), rec.Warnings(), err
}
