package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govault/govault/internal/vault"
)

// NewBackupCommand creates the backup command.
func NewBackupCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:           "backup",
		Short:         "Write a timestamped JSON snapshot",
		Long:          "Write a timestamped JSON snapshot of all records into the backups directory. Prior backups are never overwritten.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cleanup, err := openVault(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := v.Backup(dir)
			if err != nil {
				return WrapExitError(ExitCommandError, "backup failed", err)
			}

			f := newFormatter(cmd, opts)
			return f.Success(fmt.Sprintf("Backup written to %s", path), map[string]string{"path": path})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", vault.DefaultBackupDir, "backup directory")

	return cmd
}
