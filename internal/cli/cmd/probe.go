package cmd

import (
	"github.com/spf13/cobra"

	"encsweep/internal/log"
	"encsweep/internal/pipeline"
	"encsweep/internal/report"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:           "probe [input]",
		Short:         "Show the metadata ffmpeg reports for the input",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ffmpeg, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			log.Configure(log.Config{Level: s.LogLevel, Output: cmd.ErrOrStderr(), Console: true})

			stat, err := pipeline.NewService(serviceOptions(s, ffmpeg, s.Verbose)...).Probe(cmd.Context(), s.Input)
			if err != nil {
				return &ExitError{Code: ExitProbeError, Err: err}
			}
			report.PrintSource(cmd.OutOrStdout(), stat)
			return nil
		},
	}
}
