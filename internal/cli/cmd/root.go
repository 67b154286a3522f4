package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitMissingDep = 2
	ExitProbeError = 3
	ExitJobsFailed = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// app carries the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "encsweep [input]",
		Short: "Encode one video across a matrix of resolutions, frame rates and CRFs",
		Long: "encsweep probes a source video, expands every combination of the requested " +
			"resolutions, frame rates and quality factors, skips the ones the source cannot " +
			"supply, and runs the rest through ffmpeg concurrently with live progress.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSweep(cmd, args, runMode{})
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: config.{yaml,json,toml} in the config dir)")
	root.PersistentFlags().String("ffmpeg", "", "Path to ffmpeg (default: looked up in PATH)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().BoolP("verbose", "v", false, "Echo ffmpeg command lines")
	root.PersistentFlags().Bool("no-ui", false, "Disable the terminal display; log progress instead")

	// Also bind sweep flags on root, so `encsweep <input>` works without `run`.
	bindSweepFlags(root.Flags())

	// Subcommands
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newTuiCmd(a))
	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newProbeCmd(a))
	root.AddCommand(newDoctorCmd(a))
	root.AddCommand(newCompletionCmd())

	return root
}

func bindSweepFlags(fs *pflag.FlagSet) {
	fs.StringP("out-dir", "o", "", "Output directory (default: next to the input)")
	fs.StringSliceP("resolution", "r", nil, "Resolutions: 720p, 1280x720, 1280x (derive height) or x720 (derive width)")
	fs.StringSlice("fps", nil, "Frame rates; 'src' keeps the source rate")
	fs.StringSlice("crf", nil, "Quality factors (0-51, lower is better)")
	fs.Bool("audio", true, "Keep the audio track")
	fs.String("codec", "", "Video encoder (default libx264)")
	fs.String("preset", "", "Encoder preset (default veryfast)")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}
