package encoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"encsweep/internal/util"
)

// Captured with: ffmpeg -hide_banner -nostdin -loglevel level+info -i in.mp4
const probeOutput = `[info] Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'in.mp4':
[info]   Metadata:
[info]     major_brand     : isom
[info]     encoder         : Lavf60.16.100
[info]   Duration: 00:00:10.00, start: 0.000000, bitrate: 1205 kb/s
[info]   Stream #0:0[0x1](und): Video: h264 (High) (avc1 / 0x31637661), yuv420p(progressive), 1920x1080 [SAR 1:1 DAR 16:9], 1067 kb/s, 30 fps, 30 tbr, 15360 tbn (default)
[info]       Metadata:
[info]         handler_name    : VideoHandler
[info]   Stream #0:1[0x2](und): Audio: aac (LC) (mp4a / 0x6134706D), 48000 Hz, stereo, fltp, 128 kb/s (default)
[info]       Metadata:
[info]         handler_name    : SoundHandler
[fatal] At least one output file must be specified
`

const encodeOutput = "[info] Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'in.mp4':\n" +
	"[info]   Duration: 00:00:10.00, start: 0.000000, bitrate: 1205 kb/s\n" +
	"[info]   Stream #0:0[0x1](und): Video: h264 (High) (avc1 / 0x31637661), yuv420p(progressive), 1920x1080 [SAR 1:1 DAR 16:9], 1067 kb/s, 30 fps, 30 tbr, 15360 tbn (default)\n" +
	"[info]   Stream #0:1[0x2](und): Audio: aac (LC) (mp4a / 0x6134706D), 48000 Hz, stereo, fltp, 128 kb/s (default)\n" +
	"[info] Stream mapping:\n" +
	"[info]   Stream #0:0 -> #0:0 (h264 (native) -> h264 (libx264))\n" +
	"[libx264 @ 0x5581c0] [info] using cpu capabilities: MMX2 SSE2Fast SSSE3 SSE4.2 AVX\n" +
	"[info] Output #0, mp4, to 'out.mp4':\n" +
	"[info]   Stream #0:0(und): Video: h264 (avc1 / 0x31637661), yuv420p(progressive), 1280x720 [SAR 1:1 DAR 16:9], q=2-31, 30 fps, 15360 tbn (default)\n" +
	"[mp4 @ 0x5581c1] [warning] track 1: codec frame size is not set\n" +
	"[info] frame=   75 fps=0.0 q=28.0 size=       0kB time=00:00:02.43 bitrate=   0.2kbits/s speed=4.85x    \r" +
	"[info] frame=  150 fps=149 q=28.0 size=     256kB time=00:00:04.93 bitrate= 425.1kbits/s speed=4.9x    \r" +
	"[info] frame=  300 fps=150 q=-1.0 Lsize=     612kB time=00:00:09.93 bitrate= 504.8kbits/s speed=4.95x    \n"

const crashOutput = "[info] Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'in.mp4':\n" +
	"[info]   Duration: 00:00:10.00, start: 0.000000, bitrate: 1205 kb/s\n" +
	"[info]   Stream #0:0[0x1](und): Video: h264 (High), yuv420p(progressive), 1920x1080, 30 fps, 30 tbr, 15360 tbn (default)\n" +
	"[info] frame=   40 fps=0.0 q=28.0 size=       0kB time=00:00:01.30 bitrate=   0.2kbits/s speed=2.6x    \r" +
	"[h264 @ 0x5581c2] [error] Invalid NAL unit size (1234 > 567).\n" +
	"[info] frame=   41 fps=0.0 q=28.0 size=       0kB time=00:00:01.33 bitrate=   0.2kbits/s speed=2.6x    \r"

// fakeRunner replays canned stderr and optionally writes the output file
// (last argument) the way ffmpeg would.
type fakeRunner struct {
	stderr     string
	exitCode   int
	outputSize int
	writeOut   bool

	gotArgs []string
}

func (f *fakeRunner) Run(ctx context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	f.gotArgs = spec.Args
	if f.writeOut && len(spec.Args) > 0 {
		out := spec.Args[len(spec.Args)-1]
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return util.CmdResult{Code: -1}, err
		}
		if err := os.WriteFile(out, make([]byte, f.outputSize), 0o644); err != nil {
			return util.CmdResult{Code: -1}, err
		}
	}
	if spec.StderrReader != nil {
		spec.StderrReader(strings.NewReader(f.stderr))
	}
	if f.exitCode != 0 {
		err := errors.New("exit status")
		return util.CmdResult{Code: f.exitCode, Err: err}, err
	}
	return util.CmdResult{}, nil
}
