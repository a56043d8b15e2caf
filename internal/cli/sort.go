package cli

import (
	"github.com/spf13/cobra"

	"github.com/govault/govault/internal/vault"
)

// NewSortCommand creates the sort command.
func NewSortCommand(opts *RootOptions) *cobra.Command {
	var by string
	var desc bool

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "List records in sorted order",
		Long: `List all records ordered by id, name, or createdAt.

An unrecognized field orders by id. The stored order is never changed.

Example:
  govault sort --by name --desc`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			order := vault.Ascending
			if desc {
				order = vault.Descending
			}
			records, err := v.Sort(vault.SortField(by), order)
			if err != nil {
				return WrapExitError(ExitCommandError, "sort failed", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(renderRecords(records), records)
		},
	}

	cmd.Flags().StringVar(&by, "by", "id", "field to sort by (id|name|createdAt)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")

	return cmd
}
