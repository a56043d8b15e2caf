package cli

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show descriptive statistics over the record set",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := v.Statistics()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to compute statistics", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(stats.String(), stats)
		},
	}
}
