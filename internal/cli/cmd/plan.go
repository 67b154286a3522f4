package cmd

import (
	"github.com/spf13/cobra"

	"encsweep/internal/log"
	"encsweep/internal/pipeline"
	"encsweep/internal/report"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan [input]",
		Short:         "Probe the input and show the job matrix without encoding",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ffmpeg, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			log.Configure(log.Config{Level: s.LogLevel, Output: cmd.ErrOrStderr(), Console: true})

			svc := pipeline.NewService(serviceOptions(s, ffmpeg, s.Verbose)...)
			stat, err := svc.Probe(cmd.Context(), s.Input)
			if err != nil {
				return &ExitError{Code: ExitProbeError, Err: err}
			}
			report.PrintPlan(cmd.OutOrStdout(), pipeline.Plan(stat, s.Configs, s.OutDir))
			return nil
		},
	}
	bindSweepFlags(cmd.Flags())
	return cmd
}
