package cli

import (
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find records by keyword",
		Long: `Find records whose name, value, or ID contains the keyword.

Matching is case-insensitive on name and value. The mirror is consulted
first when configured; otherwise, or when it yields nothing, the store file
is scanned.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := v.Search(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "search failed", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(renderRecords(records), records)
		},
	}
}
