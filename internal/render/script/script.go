// Package script renders a bash script that converts ripped wav files into
// tagged flac files.
//
// The script is only written when the whole stream was processed without
// errors. Until then every track is buffered, together with the images,
// directories and files the script has to check before converting anything.
package script

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/config"
	"github.com/simonhull/kvtag/internal/format"
	"github.com/simonhull/kvtag/internal/keys"
	"github.com/simonhull/kvtag/internal/registry"
	"github.com/simonhull/kvtag/internal/render"
	"github.com/simonhull/kvtag/internal/types"
)

//go:embed prelude.sh.tmpl
var preludeText string

var prelude = template.Must(template.New("prelude").Parse(preludeText))

func init() {
	registry.Register(types.ModeScript, func(w io.Writer, cfg *config.Config) chain.Handler {
		if cfg == nil {
			cfg = config.Default()
		}
		return New(w, cfg.Script)
	})
}

// Renderer buffers the commands of every track and prints the complete
// script at the end of a healthy stream.
type Renderer struct {
	*render.Tracks

	w   io.Writer
	cfg config.ScriptConfig
	err error

	body   strings.Builder
	images map[string]struct{}
	dirs   map[string]struct{}
	files  map[string]struct{}
}

// New returns a script renderer writing to w.
func New(w io.Writer, cfg config.ScriptConfig) *Renderer {
	r := &Renderer{w: w, cfg: cfg}
	r.Tracks = render.NewTracks(r.track)
	r.reset()
	return r
}

// Err returns the first error of the current stream.
func (r *Renderer) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.Tracks.Err()
}

func (r *Renderer) reset() {
	r.body.Reset()
	r.images = make(map[string]struct{})
	r.dirs = make(map[string]struct{})
	r.files = make(map[string]struct{})
}

// OnBegin implements chain.Handler.
func (r *Renderer) OnBegin(source string) {
	r.Tracks.OnBegin(source)
	r.err = nil
	r.reset()
}

// OnEnd implements chain.Handler.
func (r *Renderer) OnEnd(ok bool) {
	if ok && r.Healthy() {
		if err := r.write(); err != nil {
			r.err = err
			r.SetHealthy(false)
		}
	}
	r.reset()
	r.Tracks.OnEnd(ok)
}

func (r *Renderer) write() error {
	if err := prelude.Execute(r.w, r.cfg); err != nil {
		return err
	}

	var b strings.Builder
	checks(&b, "images", "chkimage", r.images)
	checks(&b, "directories", "chktdir", r.dirs)
	checks(&b, "files", "chktfile", r.files)
	b.WriteString(r.body.String())
	b.WriteString("# signalize success\nexit 0\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func checks(b *strings.Builder, what, cmd string, set map[string]struct{}) {
	if len(set) == 0 {
		return
	}
	fmt.Fprintf(b, "# check %s\n", what)
	for _, v := range slices.Sorted(maps.Keys(set)) {
		fmt.Fprintf(b, "%s %s\n", cmd, Quote(v))
	}
	b.WriteByte('\n')
}

// track buffers the commands of one complete track.
func (r *Renderer) track(_ string, t *types.Record) error {
	index := format.PadLeft(t.Get(keys.CompilationIndex.Name()), 3, '0')
	filename := t.Get(keys.Filename.Name())
	image := t.Get(keys.Image.Name())

	in := "track" + index + ".cdda.wav"
	out := "track" + index + ".flac"

	b := &r.body
	b.WriteString("# add empty line\necho\n\n")

	b.WriteString("# create flac file\n")
	fmt.Fprintf(b, "if [ -s %s ] ; then\n\n", Quote(in))

	b.WriteString("  # show progress\n")
	fmt.Fprintf(b, "  infomsg \"converting %s\"\n\n", QuoteInner(in))

	b.WriteString("  # convert wav to flac\n")
	b.WriteString("  flac --force \\\n")
	b.WriteString("       --verify \\\n")
	fmt.Fprintf(b, "       --compression-level-%d \\\n", r.cfg.CompressionLevel)
	if image != "" {
		r.images[image] = struct{}{}
		fmt.Fprintf(b, "       --picture=\"%d||||%s\" \\\n", r.cfg.PictureType, QuoteInner(image))
	}
	fmt.Fprintf(b, "       --output-name=%s \\\n", Quote(out))
	fmt.Fprintf(b, "       %s\n\n", Quote(in))

	first := true
	for _, key := range render.CommentOrder {
		v := t.Get(key)
		if v == "" {
			continue
		}
		if first {
			b.WriteString("  # set comments\n")
			b.WriteString("  metaflac ")
			first = false
		} else {
			b.WriteString("           ")
		}
		fmt.Fprintf(b, "--set-tag=\"%s=%s\" \\\n", key, QuoteInner(v))
	}
	if !first {
		fmt.Fprintf(b, "           %s\n", Quote(out))
	}
	b.WriteByte('\n')

	if filename != "" {
		if dir := Dirname(filename); dir != "" {
			r.dirs[dir] = struct{}{}
		}
		r.files[filename] = struct{}{}

		b.WriteString("  # rename file\n")
		fmt.Fprintf(b, "  mv -f %s %s\n\n", Quote(out), Quote(filename))
	}

	b.WriteString("# missing or empty wav file\n")
	b.WriteString("else\n\n")
	b.WriteString("  # notify user\n")
	fmt.Fprintf(b, "  warnmsg \"skipping missing (or empty) wav file: %s\"\n\n", QuoteInner(in))

	if filename != "" {
		b.WriteString("  # remove (touched resp. truncated) flac file\n")
		fmt.Fprintf(b, "  rm -f %s\n\n", Quote(filename))
	}

	b.WriteString("fi\n\n")
	return nil
}

// Quote returns s as a double quoted bash word.
func Quote(s string) string {
	return `"` + QuoteInner(s) + `"`
}

// QuoteInner escapes s for use inside double quotes. History expansion is
// avoided by switching to single quotes around every '!'.
func QuoteInner(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '$', '`', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '!':
			b.WriteString(`"'!'"`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Dirname returns everything up to and including the last slash of path,
// or "" if there is none.
func Dirname(path string) string {
	return path[:strings.LastIndexByte(path, '/')+1]
}
