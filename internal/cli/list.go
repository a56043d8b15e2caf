package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all records",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := v.List()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list records", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(renderRecords(records), records)
		},
	}
}
