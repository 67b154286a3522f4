package cmd

import (
	"github.com/spf13/cobra"
)

func newTuiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui [input]",
		Short:         "Run the sweep with the terminal display even when stdout is not a TTY",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSweep(cmd, args, runMode{ForceTUI: true})
		},
	}
	bindSweepFlags(cmd.Flags())
	return cmd
}
