package types

import (
	"fmt"
	"strings"
)

// Mode selects the terminal renderer of a pipeline.
type Mode int

const (
	// ModeScript renders a bash script that encodes and tags the tracks.
	ModeScript Mode = iota // script
	// ModeOverview renders one line per track.
	ModeOverview // overview
	// ModeVerboseOverview renders one line per track followed by every key.
	ModeVerboseOverview // verbose
	// ModeDBase renders one flat database line per track.
	ModeDBase // dbase
	// ModeDebug prints every event as it arrives.
	ModeDebug // debug
)

var modeNames = [...]string{
	ModeScript:          "script",
	ModeOverview:        "overview",
	ModeVerboseOverview: "verbose",
	ModeDBase:           "dbase",
	ModeDebug:           "debug",
}

// Modes returns every known mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeScript, ModeOverview, ModeVerboseOverview, ModeDBase, ModeDebug}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name (case-insensitive) to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), nil
		}
	}
	return ModeScript, fmt.Errorf("unknown output mode %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so modes can be read
// from configuration files.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
