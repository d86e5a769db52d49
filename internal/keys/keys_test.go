package keys

import (
	"bytes"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		defined  bool
		writable bool
		comment  bool
	}{
		{"ALBUM", true, true, true},
		{"TITLE", true, true, true},
		{"COMPILATIONINDEX", true, false, true},
		{"FILENAME", true, true, false},
		{"IMAGE", true, true, false},
		{"VERSION", true, true, true},
		{"title", false, false, false},
		{"_MYVAR", false, false, false},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDefined(tt.name); got != tt.defined {
				t.Errorf("IsDefined(%q) = %v, want %v", tt.name, got, tt.defined)
			}
			if got := IsWritable(tt.name); got != tt.writable {
				t.Errorf("IsWritable(%q) = %v, want %v", tt.name, got, tt.writable)
			}
			if got := IsVorbisComment(tt.name); got != tt.comment {
				t.Errorf("IsVorbisComment(%q) = %v, want %v", tt.name, got, tt.comment)
			}
		})
	}
}

func TestTable(t *testing.T) {
	var (
		count       int
		notWritable []string
		notComment  []string
		longest     int
	)
	for id := range All() {
		count++
		name := id.Name()
		if got, ok := Lookup(name); !ok || got != id {
			t.Errorf("Lookup(%q) = (%v, %v), want (%v, true)", name, got, ok, id)
		}
		if !id.Writable() {
			notWritable = append(notWritable, name)
		}
		if !id.Comment() {
			notComment = append(notComment, name)
		}
		longest = max(longest, len(name))
	}

	if count != 22 {
		t.Errorf("All() yielded %d keys, want %d", count, 22)
	}
	if Count != count {
		t.Errorf("Count = %d, want %d", Count, count)
	}
	if got := strings.Join(notWritable, ","); got != "COMPILATIONINDEX" {
		t.Errorf("non-writable keys = %q, want %q", got, "COMPILATIONINDEX")
	}
	if got := strings.Join(notComment, ","); got != "FILENAME,IMAGE" {
		t.Errorf("non-comment keys = %q, want %q", got, "FILENAME,IMAGE")
	}
	if longest != MaxNameSize {
		t.Errorf("longest key = %d, want MaxNameSize %d", longest, MaxNameSize)
	}
}

func TestUndefinedID(t *testing.T) {
	id := ID(Count)
	if id.Defined() || id.Writable() || id.Comment() || id.Name() != "" || id.Note() != "" {
		t.Errorf("ID(%d) reported as a known key", Count)
	}
	if got := id.String(); got != "ID(22)" {
		t.Errorf("String() = %q, want %q", got, "ID(22)")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != Count+1 {
		t.Fatalf("WriteTable() printed %d lines, want %d", len(lines), Count+1)
	}

	tests := []struct {
		line int
		want string
	}{
		{0, "ALBUM            [WC] this key resets TRACKNUMBER to 1"},
		{1, "ALBUMARTIST      [WC]"},
		{7, "COMPILATIONINDEX [-C] always passed along with TITLE; automatically increased by TITLE (after printing)"},
		{12, "FILENAME         [W-]"},
		{Count, "_ANYOTHERKEY     [W-] any other key has to start with an underscore"},
	}
	for _, tt := range tests {
		if lines[tt.line] != tt.want {
			t.Errorf("line %d = %q, want %q", tt.line, lines[tt.line], tt.want)
		}
	}
}
