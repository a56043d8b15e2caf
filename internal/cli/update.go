package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/govault/govault/internal/record"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "update <id> <name> <value>",
		Short:         "Rewrite name and value on an existing record",
		Args:          cobra.ExactArgs(3),
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

			rec, found, err := v.Update(id, args[1], args[2])
			if err != nil {
				if record.IsValidationError(err) {
					return WrapExitError(ExitFailure, "invalid record", err)
				}
				return WrapExitError(ExitCommandError, "failed to update record", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("record %d not found", id))
			}

			f := newFormatter(cmd, opts)
			return f.Success(fmt.Sprintf("Updated record %d (%s)", rec.ID, rec.Name), rec)
		},
	}
}
