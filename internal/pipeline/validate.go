package pipeline

import (
	"errors"
	"fmt"

	"encsweep/internal/model"
)

// ErrUpscale matches every UpscaleError.
var ErrUpscale = errors.New("configuration exceeds source")

// UpscaleReason names the guard a config failed.
type UpscaleReason int

const (
	UpscaleResolution UpscaleReason = iota + 1
	UpscaleFrameRate
	UpscaleAudioUnavailable
)

func (r UpscaleReason) String() string {
	switch r {
	case UpscaleResolution:
		return "resolution"
	case UpscaleFrameRate:
		return "frame rate"
	case UpscaleAudioUnavailable:
		return "audio unavailable"
	default:
		return "unknown"
	}
}

// UpscaleError rejects a config before its encoder is launched.
type UpscaleError struct {
	Reason UpscaleReason

	Requested model.Dimensions // set for UpscaleResolution
	Source    model.Dimensions

	RequestedFPS float64 // set for UpscaleFrameRate
	SourceFPS    float64
}

func (e *UpscaleError) Error() string {
	switch e.Reason {
	case UpscaleResolution:
		return fmt.Sprintf("resolution %s exceeds source %s", e.Requested, e.Source)
	case UpscaleFrameRate:
		return fmt.Sprintf("frame rate %s exceeds source %s",
			model.FormatFrameRate(e.RequestedFPS), model.FormatFrameRate(e.SourceFPS))
	case UpscaleAudioUnavailable:
		return "audio requested but source has no audio stream"
	default:
		return ErrUpscale.Error()
	}
}

func (e *UpscaleError) Is(target error) bool { return target == ErrUpscale }

// Validate checks cfg against the probed source. The first failed guard is
// reported, in order: resolution, frame rate, audio. A source whose frame
// rate could not be parsed is not rate-checked.
func Validate(cfg model.EncodeConfig, stat *model.SourceStat) error {
	if stat == nil {
		return errors.New("validate: no source")
	}

	src := stat.Video.Dimensions()
	want, err := cfg.Resolution.Resolve(stat.Video)
	if err != nil {
		return err
	}
	if want.Width > src.Width || want.Height > src.Height {
		return &UpscaleError{Reason: UpscaleResolution, Requested: want, Source: src}
	}

	if !cfg.KeepsSourceRate() && stat.Video.FrameRate > 0 && cfg.FrameRate > stat.Video.FrameRate {
		return &UpscaleError{Reason: UpscaleFrameRate, RequestedFPS: cfg.FrameRate, SourceFPS: stat.Video.FrameRate}
	}

	if cfg.IncludeAudio && !stat.HasAudio() {
		return &UpscaleError{Reason: UpscaleAudioUnavailable}
	}
	return nil
}

// PlannedJob is a job together with its resolved target and validation verdict.
type PlannedJob struct {
	Job    model.Job
	Target model.Dimensions
	Err    error // nil when the job would be launched
}

// Plan builds the jobs for configs and validates each, launching nothing.
func Plan(stat *model.SourceStat, configs []model.EncodeConfig, outDir string) []PlannedJob {
	jobs := BuildJobs(stat, configs, outDir)
	out := make([]PlannedJob, len(jobs))
	for i, j := range jobs {
		target, _ := j.Config.Resolution.Resolve(stat.Video)
		out[i] = PlannedJob{Job: j, Target: target, Err: Validate(j.Config, stat)}
	}
	return out
}
