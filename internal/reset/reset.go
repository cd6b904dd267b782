// Package reset sequences a device identity reset: stop the application,
// back up its state, generate identifiers, update the registry and rewrite
// storage.json.
package reset

import (
	"context"
	"fmt"
	"time"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
	"github.com/cursor-id-reset/cursor-id-reset/internal/registry"
)

type Quiescer interface {
	Quiesce(ctx context.Context, name string) error
}

type RegistryUpdater interface {
	UpdateMachineGuid() registry.Result
}

type ConfigUpdater interface {
	Update(path string, ids identity.Set) error
}

type Orchestrator struct {
	Sink         message.Sink
	ProcessNames []string
	StoragePath  string
	RequireAdmin bool
	IsAdmin      func() bool
	AdminHint    string
	SkipRegistry bool

	Quiescer  Quiescer
	Backups   *backup.Manager
	Generator identity.Generator
	Registry  RegistryUpdater
	Config    ConfigUpdater

	Now func() time.Time
}

// Run performs one reset. On a fatal condition the report ends in
// StateFailed and the returned error is a *StepError. A registry failure is
// recorded in the report but never fails the run.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	now := o.Now
	if now == nil {
		now = time.Now
	}

	r := &Report{StartedAt: now()}
	r.enter(StateStart)

	fail := func(err error) (*Report, error) {
		last := r.Final
		r.Err = err
		r.enter(StateFailed)
		r.FinishedAt = now()
		return r, &StepError{State: last, Err: err}
	}

	if err := o.checkPreconditions(); err != nil {
		return fail(err)
	}

	o.Sink.Info("Checking running processes...")
	for _, name := range o.ProcessNames {
		if err := o.Quiescer.Quiesce(ctx, name); err != nil {
			return fail(err)
		}
	}
	r.enter(StateProcessesClosed)

	created, err := o.Backups.EnsureDir()
	if err != nil {
		o.Sink.Error("Failed to create backup directory at %s: %v", o.Backups.Dir, err)
		return fail(fmt.Errorf("%w: %w", ErrBackup, err))
	}
	if created {
		o.Sink.Info("Created backup directory at %s", o.Backups.Dir)
	}

	o.Sink.Info("Backing up config file...")
	record, err := o.Backups.File(o.StoragePath)
	if err != nil {
		o.Sink.Error("Failed to back up %s: %v", o.StoragePath, err)
		return fail(fmt.Errorf("%w: %w", ErrBackup, err))
	}
	if record != nil {
		o.Sink.Info("Config backed up to %s", record.BackupPath)
		r.Backups = append(r.Backups, *record)
	} else {
		o.Sink.Info("No existing config file found at %s to back up", o.StoragePath)
	}
	r.enter(StateBackedUp)

	o.Sink.Info("Generating new identifiers...")
	r.Identity = o.Generator.New()
	r.enter(StateIdsGenerated)

	o.updateRegistry(r, now)

	o.Sink.Info("Updating config...")
	if err := o.Config.Update(o.StoragePath, r.Identity); err != nil {
		o.Sink.Error("Failed to update the config file")
		return fail(err)
	}
	r.Applied = true
	r.enter(StateConfigUpdated)

	r.enter(StateDone)
	r.FinishedAt = now()
	return r, nil
}

func (o *Orchestrator) checkPreconditions() error {
	if o.RequireAdmin && (o.IsAdmin == nil || !o.IsAdmin()) {
		o.Sink.Error("Please run this tool with administrator privileges")
		if o.AdminHint != "" {
			o.Sink.Plain("%s", o.AdminHint)
		}
		return fmt.Errorf("%w: administrator privileges are required", ErrPrecondition)
	}
	if o.StoragePath == "" {
		o.Sink.Error("Cannot determine the config file path")
		return fmt.Errorf("%w: config file path is unknown", ErrPrecondition)
	}
	if o.Backups == nil || o.Backups.Dir == "" {
		o.Sink.Error("Cannot determine the backup directory path")
		return fmt.Errorf("%w: backup directory is unknown", ErrPrecondition)
	}
	return nil
}

func (o *Orchestrator) updateRegistry(r *Report, now func() time.Time) {
	if o.SkipRegistry || o.Registry == nil {
		o.Sink.Info("Skipping MachineGuid update (disabled)")
		r.RegistryOutcome = RegistryDisabled
		return
	}

	r.Registry = o.Registry.UpdateMachineGuid()
	if r.Registry.BackupPath != "" {
		r.Backups = append(r.Backups, backup.Record{
			SourcePath: registry.FullKeyPath,
			BackupPath: r.Registry.BackupPath,
			Timestamp:  now(),
		})
	}

	switch {
	case r.Registry.Updated:
		r.RegistryOutcome = RegistryUpdated
		r.enter(StateRegistryUpdated)
	case r.Registry.Skipped:
		r.RegistryOutcome = RegistrySkipped
	default:
		r.RegistryOutcome = RegistryFailed
		o.Sink.Warning("MachineGuid was not updated, continuing with the config file")
	}
}
