package kvtag

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		contains []string
	}{
		{
			name:     "with character",
			err:      &ParseError{Source: "album.tags", Line: 3, Reason: "a key must not contain this character", Char: "-"},
			contains: []string{"album.tags line 3", "a key must not contain this character", `"-"`},
		},
		{
			name:     "without character",
			err:      &ParseError{Source: "-", Line: 9, Reason: "unexpected end of stream"},
			contains: []string{"- line 9: unexpected end of stream"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestOpenError_Unwrap(t *testing.T) {
	err := &OpenError{Source: "gone.tags", Err: fs.ErrNotExist}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("OpenError should unwrap to the underlying error")
	}
	if !strings.Contains(err.Error(), `"gone.tags"`) {
		t.Errorf("error message %q should quote the file name", err.Error())
	}
}

func TestKeyAndValueError_Error(t *testing.T) {
	ke := &KeyError{Key: "FOO", Reason: "key is not writable"}
	if got, want := ke.Error(), `key is not writable: "FOO"`; got != want {
		t.Errorf("KeyError.Error() = %q, want %q", got, want)
	}

	ve := &ValueError{Stage: "format", Reason: "unknown command", Value: "78"}
	if !strings.Contains(ve.Error(), "unknown command") {
		t.Errorf("ValueError.Error() = %q, should contain the reason", ve.Error())
	}
}

func TestSentinels(t *testing.T) {
	if ErrUnhealthy == nil || ErrUnresolved == nil {
		t.Fatal("sentinel errors must not be nil")
	}
	if errors.Is(ErrUnhealthy, ErrUnresolved) {
		t.Error("sentinels must be distinct")
	}
}
