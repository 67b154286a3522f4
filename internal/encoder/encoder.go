package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"encsweep/internal/model"
	"encsweep/internal/progress"
	"encsweep/internal/util"
)

// Encode runs ffmpeg for job, feeding its events into h, and returns the size
// of the produced file. The first error- or fatal-level diagnostic stops the
// process; warnings are forwarded to h and never stop it.
func Encode(ctx context.Context, job model.Job, h *progress.Handle, opts Options) (int64, error) {
	if opts.FFmpegPath == "" {
		return 0, errors.New("ffmpeg path is required")
	}
	if job.Source == nil {
		return 0, errors.New("job has no source")
	}
	if job.OutputPath == "" {
		return 0, errors.New("output path is required")
	}
	if err := util.EnsureDir(filepath.Dir(job.OutputPath)); err != nil {
		return 0, fmt.Errorf("ensure output dir: %w", err)
	}

	log := opts.Logger.With().Str("job_id", job.ID).Logger()
	args := BuildArgs(job.Source.Path, job.Config, job.OutputPath, opts.Codec, opts.Preset)
	log.Debug().Str("cmd", util.ShellQuote(opts.FFmpegPath, args)).Msg("starting encode")

	// Scoped to this job only: aborting kills this process and nothing else.
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := h.Tracker()
	var (
		abortErr    *ToolError
		sawDuration bool
		sawVideo    bool
	)
	h.SetMessage("encoding...")

	res, runErr := opts.runner().Run(jobCtx, util.CmdSpec{
		Path:    opts.FFmpegPath,
		Args:    args,
		Verbose: opts.Verbose,
		StderrReader: func(r io.Reader) {
			sc := NewEventScanner(r)
			for sc.Scan() {
				if abortErr != nil {
					continue
				}
				switch ev := sc.Event().(type) {
				case DurationParsed:
					if !sawDuration {
						sawDuration = true
						tracker.SetDuration(ev.Duration)
					}
				case StreamParsed:
					if ev.Stream.Kind == StreamVideo && !sawVideo {
						sawVideo = true
						tracker.SetStreamRate(ev.Stream.FrameRate)
					}
				case ProgressTick:
					tracker.Tick(ev.Frame)
					h.Refresh()
				case LogLine:
					switch EncodePolicy.Judge(ev) {
					case VerdictAbort:
						abortErr = &ToolError{Level: ev.Level, Message: ev.Message}
						log.Error().Str("level", ev.Level.String()).Msg(ev.Message)
						cancel()
					case VerdictWarn:
						log.Warn().Msg(ev.Message)
						h.Warn(ev.Message)
					}
				}
			}
		},
	})

	if abortErr != nil {
		_ = util.RemoveIfExists(job.OutputPath)
		return 0, &EncodingError{Tool: abortErr, ExitCode: res.Code}
	}
	if runErr != nil {
		_ = util.RemoveIfExists(job.OutputPath)
		return 0, &EncodingError{ExitCode: res.Code, Err: runErr}
	}

	size, err := util.FileSize(job.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("stat output: %w", err)
	}
	return size, nil
}
