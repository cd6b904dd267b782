package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
)

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Print a freshly generated set of identifiers",
	Long:  `Generates the identifiers a reset would write, without touching any file or the registry.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := identity.NewGenerator(cfg.TelemetryPrefix).New()
		message.Plain("machineId: %s", ids.MachineID)
		message.Plain("macMachineId: %s", ids.MacMachineID)
		message.Plain("devDeviceId: %s", ids.DevDeviceID)
		message.Plain("sqmId: %s", ids.SqmID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idsCmd)
}
