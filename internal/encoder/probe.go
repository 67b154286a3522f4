package encoder

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"encsweep/internal/model"
	"encsweep/internal/util"
)

// Options control ffmpeg execution.
type Options struct {
	FFmpegPath string
	Codec      string // video encoder, DefaultCodec when empty
	Preset     string // encoder preset, omitted when empty
	Verbose    bool
	Runner     util.CmdRunner
	Logger     zerolog.Logger
}

func (o Options) runner() util.CmdRunner {
	if o.Runner == nil {
		return util.NewDefaultRunner()
	}
	return o.Runner
}

// Probe runs ffmpeg against path with no output and builds the SourceStat from
// the header it prints.
func Probe(ctx context.Context, path string, opts Options) (*model.SourceStat, error) {
	if opts.FFmpegPath == "" {
		return nil, &ProbeError{Path: path, Err: fmt.Errorf("ffmpeg path is required")}
	}

	var (
		duration    *DurationParsed
		streams     []StreamDescriptor
		toolErr     *ToolError
		sawExpected bool
	)

	res, runErr := opts.runner().Run(ctx, util.CmdSpec{
		Path:    opts.FFmpegPath,
		Args:    BuildProbeArgs(path),
		Verbose: opts.Verbose,
		StderrReader: func(r io.Reader) {
			sc := NewEventScanner(r)
			for sc.Scan() {
				switch ev := sc.Event().(type) {
				case DurationParsed:
					if duration == nil {
						d := ev
						duration = &d
					}
				case StreamParsed:
					streams = append(streams, ev.Stream)
				case LogLine:
					if IsMissingOutput(ev) {
						sawExpected = true
					}
					if ProbePolicy.Judge(ev) == VerdictAbort && toolErr == nil {
						toolErr = &ToolError{Level: ev.Level, Message: ev.Message}
					}
				}
			}
		},
	})

	if toolErr != nil {
		return nil, &ProbeError{Path: path, Err: toolErr}
	}
	// Exiting non-zero is how ffmpeg reports the missing output we asked for.
	if runErr != nil && !sawExpected {
		return nil, &ProbeError{Path: path, Err: &ToolError{Level: LevelError, Message: fmt.Sprintf("exited with code %d: %v", res.Code, runErr)}}
	}

	stat := &model.SourceStat{Path: path}

	var videos []StreamDescriptor
	for _, s := range streams {
		switch s.Kind {
		case StreamVideo:
			videos = append(videos, s)
		case StreamAudio:
			stat.AudioStreams = append(stat.AudioStreams, model.AudioStream{Codec: s.Codec})
		}
	}
	switch len(videos) {
	case 0:
		return nil, &ProbeError{Path: path, Err: ErrNoVideoStream}
	case 1:
		v := videos[0]
		stat.Video = model.VideoStream{Width: v.Width, Height: v.Height, FrameRate: v.FrameRate, PixFmt: v.PixFmt, Codec: v.Codec}
	default:
		return nil, &ProbeError{Path: path, Err: fmt.Errorf("%w: %d", ErrAmbiguousVideoStream, len(videos))}
	}

	if duration == nil {
		return nil, &ProbeError{Path: path, Err: ErrNoDuration}
	}
	stat.Duration = duration.Duration

	size, err := util.FileSize(path)
	if err != nil {
		return nil, &ProbeError{Path: path, Err: fmt.Errorf("%w: %w", ErrFileAccess, err)}
	}
	stat.FileSize = size

	opts.Logger.Debug().
		Str("path", path).
		Str("resolution", stat.Video.Dimensions().String()).
		Float64("fps", stat.Video.FrameRate).
		Int("audio_streams", len(stat.AudioStreams)).
		Dur("duration", stat.Duration).
		Int64("bytes", stat.FileSize).
		Msg("source probed")

	return stat, nil
}
