package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"encsweep/internal/config"
	"encsweep/internal/dirs"
	"encsweep/internal/log"
	"encsweep/internal/model"
	"encsweep/internal/pipeline"
	"encsweep/internal/progress"
	"encsweep/internal/report"
	"encsweep/internal/ui"
	"encsweep/internal/util/deps"
	"encsweep/internal/util/format"
)

type runMode struct {
	ForceTUI bool
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run [input]",
		Short:         "Run the encode sweep",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSweep(cmd, args, runMode{})
		},
	}
	bindSweepFlags(cmd.Flags())
	return cmd
}

// load resolves settings and the ffmpeg binary for a command.
func (a *app) load(cmd *cobra.Command, args []string) (config.Settings, string, error) {
	if err := config.Init(a.v, cmd.Flags(), a.cfgFile); err != nil {
		return config.Settings{}, "", &ExitError{Code: ExitCLIError, Err: err}
	}
	if len(args) > 0 {
		a.v.Set(config.KeyInput, args[0])
	}
	s, err := config.Load(a.v)
	if err != nil {
		return config.Settings{}, "", &ExitError{Code: ExitCLIError, Err: err}
	}
	if s.Input == "" {
		return config.Settings{}, "", &ExitError{Code: ExitCLIError, Err: errors.New("no input: pass a video file or set 'input' in the config")}
	}
	ffmpeg, err := deps.FindFFmpeg(s.FFmpeg)
	if err != nil {
		return config.Settings{}, "", &ExitError{Code: ExitMissingDep, Err: err}
	}
	return s, ffmpeg, nil
}

func (a *app) runSweep(cmd *cobra.Command, args []string, mode runMode) error {
	s, ffmpeg, err := a.load(cmd, args)
	if err != nil {
		return err
	}

	useTUI := mode.ForceTUI || (!s.NoUI && isTerminal())
	runID := uuid.NewString()
	closeLog, err := setupLogging(s, runID, useTUI, cmd.ErrOrStderr())
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	defer closeLog()

	logger := log.WithComponent("cli")
	logger.Info().Str(log.FieldPath, s.Input).Int("configs", len(s.Configs)).Msg("run started")

	// Raw command echo would tear the terminal display.
	verbose := s.Verbose && !useTUI
	svc := pipeline.NewService(serviceOptions(s, ffmpeg, verbose)...)

	stat, err := svc.Probe(cmd.Context(), s.Input)
	if err != nil {
		logger.Error().Err(err).Msg("probe failed")
		return &ExitError{Code: ExitProbeError, Err: err}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source %s: %s, %s, %s\n",
		stat.Path,
		format.HumanizeBytes(stat.FileSize),
		model.DimensionsLabel(stat.Video.Dimensions()),
		stat.Duration)

	var sum *pipeline.Summary
	if useTUI {
		subtitle := fmt.Sprintf("%s • run %s", stat.Path, runID[:8])
		err = ui.Run(cmd.Context(), out, "encsweep", subtitle, func(ctx context.Context, rep progress.Reporter) error {
			var runErr error
			sum, runErr = pipeline.NewService(serviceOptions(s, ffmpeg, verbose, pipeline.WithReporter(rep))...).RunProbed(ctx, stat, s.Configs)
			return runErr
		})
	} else {
		rep := ui.NewPlainReporter(log.WithComponent("progress"), 10)
		sum, err = pipeline.NewService(serviceOptions(s, ffmpeg, verbose, pipeline.WithReporter(rep))...).RunProbed(cmd.Context(), stat, s.Configs)
	}
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if sum == nil {
		return &ExitError{Code: ExitCLIError, Err: errors.New("sweep did not complete")}
	}

	failed := report.Print(out, s.Configs, sum.Outcomes)
	logger.Info().Int("failed", failed).Int("total", len(sum.Outcomes)).Msg("run finished")
	if failed > 0 {
		return &ExitError{Code: ExitJobsFailed, Err: fmt.Errorf("%d of %d encodes failed", failed, len(sum.Outcomes))}
	}
	return nil
}

func serviceOptions(s config.Settings, ffmpeg string, verbose bool, extra ...pipeline.Option) []pipeline.Option {
	opts := []pipeline.Option{
		pipeline.WithFFmpegPath(ffmpeg),
		pipeline.WithCodec(s.Codec),
		pipeline.WithPreset(s.Preset),
		pipeline.WithOutDir(s.OutDir),
		pipeline.WithVerbose(verbose),
		pipeline.WithLogger(log.WithComponent("pipeline")),
	}
	return append(opts, extra...)
}

// setupLogging sends logs to the state-dir log file while the terminal display
// owns the screen, and to errOut otherwise.
func setupLogging(s config.Settings, runID string, useTUI bool, errOut io.Writer) (func(), error) {
	if !useTUI {
		log.Configure(log.Config{Level: s.LogLevel, Output: errOut, Console: true, RunID: runID})
		return func() {}, nil
	}
	path, err := dirs.LogFile()
	if err != nil {
		return nil, fmt.Errorf("locate log file: %w", err)
	}
	if err := dirs.Ensure(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Configure(log.Config{Level: s.LogLevel, Output: f, RunID: runID})
	return func() { _ = f.Close() }, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
