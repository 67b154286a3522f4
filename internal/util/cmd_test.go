package util

import (
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
)

func TestShellQuote(t *testing.T) {
	got := ShellQuote("/usr/bin/ffmpeg", []string{"-i", "my clip.mp4", "", "it's"})
	want := `/usr/bin/ffmpeg -i 'my clip.mp4' '' 'it'\''s'`
	if got != want {
		t.Errorf("ShellQuote = %s, want %s", got, want)
	}
}

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	var lines []string
	var stderr string
	res, err := Run(context.Background(), CmdSpec{
		Path:       "sh",
		Args:       []string{"-c", "echo one; echo two; echo oops >&2; exit 3"},
		StdoutLine: func(l string) { lines = append(lines, l) },
		StderrReader: func(r io.Reader) {
			b, _ := io.ReadAll(r)
			stderr = string(b)
		},
	})
	if err == nil {
		t.Fatal("expected error for exit 3")
	}
	if res.Code != 3 {
		t.Errorf("Code = %d, want 3", res.Code)
	}
	if strings.Join(lines, ",") != "one,two" {
		t.Errorf("stdout lines = %v", lines)
	}
	if strings.TrimSpace(stderr) != "oops" {
		t.Errorf("stderr = %q", stderr)
	}
}
