package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Remove a record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid record id %q", args[0]), err)
			}

			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, found, err := v.Delete(id)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to delete record", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("record %d not found", id))
			}

			f := newFormatter(cmd, opts)
			return f.Success(fmt.Sprintf("Deleted record %d (%s)", rec.ID, rec.Name), rec)
		},
	}
}
