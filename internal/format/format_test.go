package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/kvtag/internal/chain"
	"github.com/simonhull/kvtag/internal/diag"
	"github.com/simonhull/kvtag/internal/types"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"empty", "", ""},
		{"left pad", "%2z~5~", "05"},
		{"left pad wide", "%3z/7/", "007"},
		{"left pad noop", "%2z~123~", "123"},
		{"right pad", "%4Z|12|", "1200"},
		{"no quantifier", "%z~5~", "5"},
		{"comma field", "%1c~a,b,c~", "a"},
		{"comma field last", "%3c~a,b,c~", "c"},
		{"comma field out of range", "%4c~a,b,c~", ""},
		{"comma field zero", "%0c~a,b,c~", ""},
		{"comma field without separator", "%1c~abc~", "abc"},
		{"semicolon field", "%2s/x;y/", "y"},
		{"trim", "%t~  a  b \t~", "a  b"},
		{"squeeze", "%q~ a  b ~", "a b"},
		{"squeeze newlines", "%q~a\n\r\tb~", "a b"},
		{"filename", "%f~Björk: Post~", "bjoerk_post"},
		{"filename accent", "%f~é~", "e"},
		{"nested", "%2z~%1c/7,8/~", "07"},
		{"surrounding text", "Disc %2z.3. of 10", "Disc 03 of 10"},
		{"escape", `100\% sure`, "100% sure"},
		{"escape backslash", `a\\b`, `a\b`},
		{"escape inside argument", `%t~ \%a ~`, "%a"},
		{"two commands", "%1c~a,b~-%2c~a,b~", "a-b"},
		{"largest quantifier", "[%4294967295c~a,b~]", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.in)
			if err != nil {
				t.Fatalf("String(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestString_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		reason string
	}{
		{"delimiter above 127", "%2z\xc3\xa9x\xc3\xa9", "delimiters must be 7-bit values"},
		{"unterminated argument", "%2z~5", "invalid syntax"},
		{"missing operator", "abc%", "invalid syntax"},
		{"missing delimiter", "%2z", "invalid syntax"},
		{"trailing escape", `abc\`, "invalid syntax"},
		{"unknown operator", "%x~a~", "unknown command"},
		{"quantifier overflow", "%99999999999z~a~", "invalid number"},
		{"quantifier above 32 bits", "%4294967296c~a~", "invalid number"},
		{"nested error", "%t~%x/a/~", "unknown command"},
		{"invalid utf-8", "%f~a\xffb~", "invalid UTF-8 encoding"},
		{"filename too long", "%f~" + strings.Repeat("é", 256) + "~", "filename is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := String(tt.in)
			var ve *types.ValueError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.reason, ve.Reason)
			assert.Equal(t, "format", ve.Stage)
		})
	}
}

func TestString_UnknownCommandMessage(t *testing.T) {
	_, err := String("%y~a~")
	require.Error(t, err)
	assert.Equal(t, `unknown command: "%y"`, err.Error())
}

func TestParse(t *testing.T) {
	expr, err := Parse("a%2z~%1c/x/~b")
	require.NoError(t, err)

	want := Expr{
		{Text: "a"},
		{Op: 'z', Quantifier: "2", Arg: Expr{{Op: 'c', Quantifier: "1", Arg: Expr{{Text: "x"}}}}},
		{Text: "b"},
	}
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01 - Intro.wav", "01_intro_wav"},
		{"__a__b__", "a_b"},
		{"Größe", "groesse"},
		{"!!!", ""},
		{strings.Repeat("a", MaxFilenameSize), strings.Repeat("a", MaxFilenameSize)},
	}

	for _, tt := range tests {
		got, err := Filename(tt.in)
		if err != nil {
			t.Fatalf("Filename(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "007", PadLeft("7", 3, '0'))
	assert.Equal(t, "1234", PadLeft("1234", 3, '0'))
	assert.Equal(t, "7__", PadRight("7", 3, '_'))
}

func TestStage(t *testing.T) {
	var rec diag.Recorder
	sink := chain.NewCollector("")
	head, err := chain.Connect(sink, NewStage(&rec))
	require.NoError(t, err)

	chain.Replay(head,
		chain.Begin("src"),
		chain.Data("TRACKNUMBER", "%2z~3~"),
		chain.Data("TITLE", "%w~bad~"),
		chain.Data("ARTIST", "lost"),
		chain.End(false),
	)

	want := []chain.Event{chain.Begin("src"), chain.Data("TRACKNUMBER", "03"), chain.End(false)}
	if diff := cmp.Diff(want, sink.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, rec.Errors(), 1)
}
