package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"encsweep/internal/config"
	"encsweep/internal/util"
	"encsweep/internal/util/deps"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (ffmpeg)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(a.v, cmd.Flags(), a.cfgFile); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			ff, err := deps.FindFFmpeg(a.v.GetString(config.KeyFFmpeg))
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}

			var version string
			_, err = util.Run(cmd.Context(), util.CmdSpec{
				Path: ff,
				Args: []string{"-hide_banner", "-version"},
				StdoutLine: func(line string) {
					if version == "" {
						version = strings.TrimSpace(line)
					}
				},
			})
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: fmt.Errorf("%s -version: %w", ff, err)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg:  %s\n", ff)
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", version)
			return nil
		},
	}
}
