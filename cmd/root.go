package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cursor-id-reset/cursor-id-reset/internal/config"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
	"github.com/cursor-id-reset/cursor-id-reset/internal/platform"
	"github.com/cursor-id-reset/cursor-id-reset/internal/session"
)

var silentMode bool
var verboseMode bool
var noEmoji bool
var noColor bool
var configFile string

// cfg is loaded once per invocation, before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cursor-id-reset",
	Short: "Reset the device identifiers of the Cursor editor",
	Long: `Stops the running editor, backs up storage.json, writes new telemetry
identifiers into it and, on Windows, replaces the machine wide MachineGuid.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		message.SetSilentMode(silentMode)
		message.SetVerboseMode(verboseMode)
		message.SetEmojiMode(!noEmoji)
		message.SetColorMode(!noColor)

		paths, err := platform.DefaultPaths()
		if err != nil {
			message.Warning("Cannot determine the default application paths: %v", err)
		}

		cfg, err = config.Load(config.Options{
			Fs:          afero.NewOsFs(),
			File:        configFile,
			DefaultFile: config.DefaultFile(),
			Paths:       paths,
		})
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		message.Debug("Using storage file %s and backup directory %s", cfg.StoragePath, cfg.BackupDir)
		return nil
	},
	RunE: runReset,
}

func Execute() {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		message.Error("failed to execute command: %v", err)
	}
	if help, _ := cmd.Flags().GetBool("help"); cmd == rootCmd && !noPause && !help {
		if err := message.WaitForEnter("Press enter to exit"); err != nil {
			message.Debug("%v", err)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// historyStore keeps the run history next to the tool's own config file.
func historyStore() (session.Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return session.Store{}, fmt.Errorf("failed to get user config directory: %w", err)
	}
	return session.NewStore(afero.NewOsFs(), filepath.Join(dir, config.DirName)), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&silentMode, "silent", false, "silent mode (hides everything except prompt/failure messages)")
	rootCmd.PersistentFlags().BoolVar(&verboseMode, "verbose", false, "verbose output (show everything, overrides silent mode)")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emojis")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and emojis")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is <user config dir>/cursor-id-reset/config.yaml)")
}
