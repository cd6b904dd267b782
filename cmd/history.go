package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
)

var clearHistory bool
var assumeYes bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous reset runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := historyStore()
		if err != nil {
			return err
		}

		if clearHistory {
			if !assumeYes && message.IsInteractive() {
				confirmed, err := message.BoolSelect(fmt.Sprintf("Remove %s?", store.Path()))
				if err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}
			if err := store.Reset(); err != nil {
				return err
			}
			message.Success("Run history removed")
			return nil
		}

		history, err := store.Load()
		if err != nil {
			return err
		}
		if len(history.Runs) == 0 {
			message.Info("No runs recorded in %s", store.Path())
			return nil
		}

		for _, run := range history.Runs {
			message.Plain("%s  %-7s registry=%s backups=%d", run.StartedAt.Format("2006-01-02 15:04:05"), run.State, run.Registry, len(run.Backups))
			if run.Error != "" {
				message.Plain("    error: %s", run.Error)
			}
			if run.Identity != nil {
				message.Plain("    machineId: %s", run.Identity.MachineID)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "remove the recorded history")
	historyCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(historyCmd)
}
