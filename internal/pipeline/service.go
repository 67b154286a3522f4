// Package pipeline expands a sweep into jobs, guards them against the source
// and runs them concurrently.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"encsweep/internal/encoder"
	"encsweep/internal/log"
	"encsweep/internal/model"
	"encsweep/internal/progress"
	"encsweep/internal/util"
	"encsweep/internal/util/format"
)

// Service runs the probe → validate → encode workflow.
type Service struct {
	ffmpegPath string
	codec      string
	preset     string
	outDir     string
	verbose    bool
	runner     util.CmdRunner
	reporter   progress.Reporter
	logger     zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Service) {
		s.ffmpegPath = p
	}
}

// WithCodec selects the video encoder passed to -c:v.
func WithCodec(c string) Option {
	return func(s *Service) {
		s.codec = c
	}
}

// WithPreset selects the encoder speed preset.
func WithPreset(p string) Option {
	return func(s *Service) {
		s.preset = p
	}
}

// WithOutDir sets where outputs are written. Empty means next to the source.
func WithOutDir(dir string) Option {
	return func(s *Service) {
		s.outDir = dir
	}
}

// WithVerbose echoes every ffmpeg command line.
func WithVerbose(v bool) Option {
	return func(s *Service) {
		s.verbose = v
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithReporter attaches a progress reporter (used by the TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithLogger sets the structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService constructs a new Service with the provided options.
func NewService(opts ...Option) *Service {
	s := &Service{
		codec:  encoder.DefaultCodec,
		preset: encoder.DefaultPreset,
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	if s.reporter == nil {
		s.reporter = progress.Discard
	}
	return s
}

func (s *Service) encoderOptions() encoder.Options {
	return encoder.Options{
		FFmpegPath: s.ffmpegPath,
		Codec:      s.codec,
		Preset:     s.preset,
		Verbose:    s.verbose,
		Runner:     s.runner,
		Logger:     s.logger,
	}
}

// Probe reads the source metadata. Its failure aborts the whole sweep.
func (s *Service) Probe(ctx context.Context, path string) (*model.SourceStat, error) {
	return encoder.Probe(ctx, path, s.encoderOptions())
}

// RunJob validates and encodes one job. It never returns without an outcome:
// a config that fails validation is recorded as a failure and no process is
// started for it.
func (s *Service) RunJob(ctx context.Context, job model.Job) model.Outcome {
	l := s.logger.With().
		Str(log.FieldJobID, job.ID).
		Str(log.FieldResolution, job.Config.Resolution.String()).
		Float64(log.FieldFPS, job.Config.FrameRate).
		Int(log.FieldCRF, job.Config.QualityFactor).
		Bool(log.FieldAudio, job.Config.IncludeAudio).
		Logger()

	h := progress.NewHandle(s.reporter, progress.Registration{
		JobID: job.ID,
		Order: job.Index,
		Label: job.Config.String(),
	}, progress.NewTracker(job.Config.FrameRate))

	if err := Validate(job.Config, job.Source); err != nil {
		l.Warn().Err(err).Msg("job rejected")
		h.Fail(err)
		return model.Failure(job, err)
	}

	opts := s.encoderOptions()
	opts.Logger = l
	l.Info().Str(log.FieldOutput, job.OutputPath).Msg("encode started")

	size, err := encoder.Encode(ctx, job, h, opts)
	if err != nil {
		l.Error().Err(err).Msg("encode failed")
		h.Fail(err)
		return model.Failure(job, err)
	}

	l.Info().Int64(log.FieldBytes, size).Msg("encode finished")
	h.Succeed(job.OutputPath, size, fmt.Sprintf("encoded: %s", format.HumanizeBytes(size)))
	return model.Success(job, size)
}

// Summary is the result of a sweep.
type Summary struct {
	Source   *model.SourceStat
	Jobs     []model.Job
	Outcomes []model.Outcome // Outcomes[i] belongs to Jobs[i]
}

// Failed counts the failed outcomes.
func (s *Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if !o.Succeeded() {
			n++
		}
	}
	return n
}

// Run probes input once, then runs every config concurrently. Only a probe
// failure is returned as an error; job failures are in the summary.
func (s *Service) Run(ctx context.Context, input string, configs []model.EncodeConfig) (*Summary, error) {
	stat, err := s.Probe(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.RunProbed(ctx, stat, configs)
}

// RunProbed runs every config against an already probed source.
func (s *Service) RunProbed(ctx context.Context, stat *model.SourceStat, configs []model.EncodeConfig) (*Summary, error) {
	jobs := BuildJobs(stat, configs, s.outDir)
	s.logger.Info().
		Str(log.FieldPath, stat.Path).
		Int("jobs", len(jobs)).
		Msg("sweep started")

	outcomes, err := RunAll(ctx, jobs, s.RunJob, NewCollector(len(jobs)))
	if err != nil {
		return nil, fmt.Errorf("collect outcomes: %w", err)
	}
	sum := &Summary{Source: stat, Jobs: jobs, Outcomes: outcomes}
	s.logger.Info().Int("failed", sum.Failed()).Msg("sweep finished")
	return sum, nil
}
