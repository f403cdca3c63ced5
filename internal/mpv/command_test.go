package mpv

import (
	"errors"
	"testing"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"seek", "seek", []string{"5", "relative"}, "seek 5 relative"},
		{"no args", "seek", nil, "seek"},
		{"empty arg kept", "cycle", []string{"pause", ""}, "cycle pause "},
		{"quoted path", "loadfile", []string{Quote("/tmp/a b.mkv"), "replace"}, `loadfile "/tmp/a b.mkv" replace`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := buildCommand(tt.cmd, tt.args)
			if err != nil {
				t.Fatalf("buildCommand() error: %v", err)
			}
			if buf[len(buf)-1] != 0 {
				t.Fatalf("buffer is not NUL-terminated: %q", buf)
			}
			if got := string(buf[:len(buf)-1]); got != tt.want {
				t.Errorf("buildCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCommandNul(t *testing.T) {
	if _, err := buildCommand("seek", []string{"5\x00", "relative"}); !errors.Is(err, ErrNull) {
		t.Errorf("NUL in argument: error = %v, want ErrNull", err)
	}
	if _, err := buildCommand("se\x00ek", nil); !errors.Is(err, ErrNull) {
		t.Errorf("NUL in name: error = %v, want ErrNull", err)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"with space", `"with space"`},
		{`C:\Videos\a.mkv`, `"C:\\Videos\\a.mkv"`},
		{`say "hi"`, `"say \"hi\""`},
		{"two\nlines", `"two\nlines"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
