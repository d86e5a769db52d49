// Package registry manages the output renderers of the tag pipeline.
package registry

import (
	"io"
	"slices"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/config"
	"github.com/simonhull/kvtag/internal/types"
)

// Factory creates a renderer writing to w.
//
// A renderer is the terminal handler of a pipeline. cfg is never nil.
type Factory func(w io.Writer, cfg *config.Config) chain.Handler

// factories maps output modes to their renderer factories.
var factories = make(map[types.Mode]Factory)

// Register registers the renderer for a mode.
// This is called by renderer packages during initialization (init functions).
func Register(mode types.Mode, f Factory) {
	factories[mode] = f
}

// Get returns the renderer factory for a mode.
// Returns nil if no renderer is registered for the mode.
func Get(mode types.Mode) Factory {
	return factories[mode]
}

// Modes returns all registered modes in ascending order.
func Modes() []types.Mode {
	modes := make([]types.Mode, 0, len(factories))
	for m := range factories {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return modes
}
