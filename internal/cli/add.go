package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govault/govault/internal/record"
)

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <value>",
		Short: "Create a record",
		Long: `Create a record with the given name and value.

The record is assigned a unique ID and creation timestamp, persisted to the
store file, and mirrored best-effort.

Example:
  govault add api-key s3cr3t`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := v.Add(args[0], args[1])
			if err != nil {
				if record.IsValidationError(err) {
					return WrapExitError(ExitFailure, "invalid record", err)
				}
				return WrapExitError(ExitCommandError, "failed to add record", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(fmt.Sprintf("Added record %d (%s)", rec.ID, rec.Name), rec)
		},
	}
}
