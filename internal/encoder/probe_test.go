package encoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSource(t *testing.T, size int) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "in.mp4")
	if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProbe_Success(t *testing.T) {
	src := writeSource(t, 4096)
	r := &fakeRunner{stderr: probeOutput, exitCode: 1}

	stat, err := Probe(context.Background(), src, Options{FFmpegPath: "ffmpeg", Runner: r})
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if stat.Video.Width != 1920 || stat.Video.Height != 1080 || stat.Video.FrameRate != 30 {
		t.Errorf("video = %+v", stat.Video)
	}
	if stat.Duration != 10*time.Second {
		t.Errorf("duration = %v, want 10s", stat.Duration)
	}
	if !stat.HasAudio() || stat.AudioStreams[0].Codec != "aac" {
		t.Errorf("audio = %+v", stat.AudioStreams)
	}
	if stat.FileSize != 4096 {
		t.Errorf("size = %d, want 4096", stat.FileSize)
	}
	if got := strings.Join(r.gotArgs, " "); got != "-hide_banner -nostdin -loglevel level+info -i "+src {
		t.Errorf("args = %q", got)
	}
}

func TestProbe_Failures(t *testing.T) {
	const header = "[info] Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'in.mp4':\n"
	const dur = "[info]   Duration: 00:00:10.00, start: 0.000000, bitrate: 1205 kb/s\n"
	const video = "[info]   Stream #0:0: Video: h264 (High), yuv420p(progressive), 1920x1080, 30 fps, 30 tbr\n"
	const audio = "[info]   Stream #0:1: Audio: aac (LC), 48000 Hz, stereo, fltp\n"
	const missing = "[fatal] At least one output file must be specified\n"

	tests := []struct {
		name     string
		stderr   string
		exitCode int
		want     error
		wantMsg  string
	}{
		{name: "no video", stderr: header + dur + audio + missing, exitCode: 1, want: ErrNoVideoStream},
		{name: "two videos", stderr: header + dur + video + strings.Replace(video, "#0:0", "#0:2", 1) + missing, exitCode: 1, want: ErrAmbiguousVideoStream},
		{name: "no duration", stderr: header + video + missing, exitCode: 1, want: ErrNoDuration},
		{name: "tool fatal", stderr: "[fatal] in.mp4: Invalid data found when processing input\n", exitCode: 1, wantMsg: "Invalid data found"},
		{name: "exit without diagnostic", stderr: header + dur + video, exitCode: 137, wantMsg: "exited with code 137"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeSource(t, 10)
			_, err := Probe(context.Background(), src, Options{FFmpegPath: "ffmpeg", Runner: &fakeRunner{stderr: tt.stderr, exitCode: tt.exitCode}})
			if err == nil {
				t.Fatal("Probe() error = nil")
			}
			var pe *ProbeError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ProbeError", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestProbe_UnreadableSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.mp4")
	_, err := Probe(context.Background(), missing, Options{FFmpegPath: "ffmpeg", Runner: &fakeRunner{stderr: probeOutput, exitCode: 1}})
	if !errors.Is(err, ErrFileAccess) {
		t.Fatalf("error = %v, want ErrFileAccess", err)
	}
}

func TestProbe_RequiresFFmpegPath(t *testing.T) {
	if _, err := Probe(context.Background(), "in.mp4", Options{}); err == nil {
		t.Fatal("expected error without ffmpeg path")
	}
}
