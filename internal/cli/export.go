package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govault/govault/internal/vault"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write all records to a text report",
		Long:          "Write all records to a human-readable text report, overwriting any prior export.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := v.Export(out)
			if err != nil {
				return WrapExitError(ExitCommandError, "export failed", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(fmt.Sprintf("Exported %d records to %s", res.Count, res.Path), res)
		},
	}

	cmd.Flags().StringVar(&out, "out", vault.DefaultExportPath, "export file path")

	return cmd
}
