package kvtag

import (
	"fmt"
	"io"

	"github.com/simonhull/kvtag/internal/config"
	"github.com/simonhull/kvtag/internal/filter"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/registry"
	"github.com/simonhull/kvtag/internal/types"

	_ "github.com/simonhull/kvtag/internal/render/dbase"    // Register dbase renderer
	_ "github.com/simonhull/kvtag/internal/render/debug"    // Register debug renderer
	_ "github.com/simonhull/kvtag/internal/render/overview" // Register overview renderers
	_ "github.com/simonhull/kvtag/internal/render/script"   // Register script renderer
)

// Mode selects the output renderer.
type Mode = types.Mode

// Output modes.
const (
	ModeScript          = types.ModeScript
	ModeOverview        = types.ModeOverview
	ModeVerboseOverview = types.ModeVerboseOverview
	ModeDBase           = types.ModeDBase
	ModeDebug           = types.ModeDebug
)

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	return types.ParseMode(name)
}

// Modes returns every mode with a registered renderer.
func Modes() []Mode {
	return registry.Modes()
}

// Config holds the settings of the command line tool and the renderers.
type Config = config.Config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// NewRenderer returns the renderer for mode writing to w. A nil cfg uses
// the defaults.
func NewRenderer(mode Mode, w io.Writer, cfg *Config) (Handler, error) {
	f := registry.Get(mode)
	if f == nil {
		return nil, fmt.Errorf("no renderer for output mode %s", mode)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return f(w, cfg), nil
}

// WriteKeyTable prints every known key with its flags and a short note.
func WriteKeyTable(w io.Writer) error {
	return keys.WriteTable(w)
}

// IsWritable reports whether key may appear in a tag file.
func IsWritable(key string) bool {
	return filter.Allowed(key)
}
