package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List the files in the backup directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := backup.NewManager(afero.NewOsFs(), cfg.BackupDir)
		names, err := manager.List()
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}

		message.Plain("%s", cfg.BackupDir)
		if len(names) == 0 {
			message.Plain("└── (empty)")
			return nil
		}
		for i, name := range names {
			branch := "├──"
			if i == len(names)-1 {
				branch = "└──"
			}
			message.Plain("%s %s", branch, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}
