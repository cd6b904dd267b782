package cmd

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
	"github.com/cursor-id-reset/cursor-id-reset/internal/platform"
	"github.com/cursor-id-reset/cursor-id-reset/internal/process"
	"github.com/cursor-id-reset/cursor-id-reset/internal/registry"
	"github.com/cursor-id-reset/cursor-id-reset/internal/reset"
	"github.com/cursor-id-reset/cursor-id-reset/internal/storage"
)

var noPause bool

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fs := afero.NewOsFs()
	sink := message.Default

	message.Banner("Cursor device identifier reset", "Stops the editor, backs up storage.json and writes new identifiers")
	showAppVersion(fs)

	quiescer := process.NewQuiescer(process.SystemTable{}, sink)
	quiescer.MaxAttempts = cfg.QuiesceAttempts
	quiescer.Interval = cfg.QuiesceInterval

	backups := backup.NewManager(fs, cfg.BackupDir)

	orchestrator := &reset.Orchestrator{
		Sink:         sink,
		ProcessNames: cfg.ProcessNames,
		StoragePath:  cfg.StoragePath,
		RequireAdmin: cfg.RequireAdmin,
		IsAdmin:      platform.IsAdmin,
		AdminHint:    platform.AdminHint,
		SkipRegistry: cfg.SkipRegistry,
		Quiescer:     quiescer,
		Backups:      backups,
		Generator:    identity.NewGenerator(cfg.TelemetryPrefix),
		Registry:     registry.NewMutator(registry.NewSystemStore(), registry.RegExe{}, backups, sink),
		Config:       storage.NewMutator(fs, sink),
	}

	report, runErr := orchestrator.Run(ctx)
	orchestrator.Summarize(report)
	recordRun(report)

	if runErr != nil {
		var stepErr *reset.StepError
		if errors.As(runErr, &stepErr) {
			message.Error("Reset failed after state %s", stepErr.State)
		}
		return runErr
	}
	return nil
}

func showAppVersion(fs afero.Fs) {
	dataDir, err := platform.DataDir()
	if err != nil {
		message.Warning("Cannot determine the application data directory: %v", err)
		return
	}
	version, path, err := platform.AppVersion(fs, platform.PackageJSONCandidates(dataDir))
	if err != nil {
		message.Warning("Cannot read the installed Cursor version: %v", err)
		return
	}
	message.Info("Cursor version: %s", version)
	message.Debug("Version read from %s", path)
}

func recordRun(report *reset.Report) {
	store, err := historyStore()
	if err == nil {
		err = store.Append(report.Record())
	}
	if err != nil {
		message.Warning("Failed to record run history: %v", err)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&noPause, "no-pause", false, "exit without waiting for enter")
}
