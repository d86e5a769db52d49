package types

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"script", ModeScript, false},
		{"overview", ModeOverview, false},
		{"VERBOSE", ModeVerboseOverview, false},
		{"dbase", ModeDBase, false},
		{"debug", ModeDebug, false},
		{"html", ModeScript, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMode_TextRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var got Mode
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != m {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, m)
		}
	}
}

func TestMode_StringOutOfRange(t *testing.T) {
	if got := Mode(42).String(); got != "Mode(42)" {
		t.Errorf("String() = %q, want %q", got, "Mode(42)")
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse error with character",
			err:  &ParseError{Source: "album.tags", Line: 3, Reason: "a key must not contain this character", Char: "-"},
			want: `album.tags line 3: a key must not contain this character: "-"`,
		},
		{
			name: "parse error without character",
			err:  &ParseError{Source: "-", Line: 7, Reason: "unexpected end of stream"},
			want: "- line 7: unexpected end of stream",
		},
		{
			name: "key error",
			err:  &KeyError{Key: "COMPILATIONINDEX", Reason: "key is not writable"},
			want: `key is not writable: "COMPILATIONINDEX"`,
		},
		{
			name: "value error",
			err:  &ValueError{Stage: "unescape", Reason: "invalid syntax", Value: `abc\`},
			want: `invalid syntax: "abc\\"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &OpenError{Source: "x.tags", Err: cause}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(OpenError, cause) = false, want true")
	}
	if want := `unable to open file: "x.tags": permission denied`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWarning_String(t *testing.T) {
	tests := []struct {
		name string
		w    Warning
		want string
	}{
		{"with line", Warning{Stage: "stack", Message: "large track number found: 1000", Line: 4}, "stack (at line 4): large track number found: 1000"},
		{"without line", Warning{Stage: "replace", Message: "empty substitution: $X"}, "replace: empty substitution: $X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
