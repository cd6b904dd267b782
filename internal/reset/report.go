package reset

import (
	"path/filepath"
	"time"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
	"github.com/cursor-id-reset/cursor-id-reset/internal/registry"
	"github.com/cursor-id-reset/cursor-id-reset/internal/session"
)

type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	// States lists every state entered, in order.
	States []State
	Final  State

	Identity        identity.Set
	Applied         bool
	Backups         []backup.Record
	Registry        registry.Result
	RegistryOutcome RegistryOutcome
	Err             error
}

func (r *Report) enter(s State) {
	r.States = append(r.States, s)
	r.Final = s
}

// FullyApplied is true when both storage.json and MachineGuid were updated.
func (r *Report) FullyApplied() bool {
	return r.Final == StateDone && r.RegistryOutcome == RegistryUpdated
}

// Record converts the report to a history entry.
func (r *Report) Record() session.Run {
	run := session.Run{
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		State:      string(r.Final),
		Registry:   string(r.RegistryOutcome),
		Backups:    r.Backups,
	}
	if r.Err != nil {
		run.Error = r.Err.Error()
	}
	if r.Applied {
		ids := r.Identity
		run.Identity = &ids
	}
	return run
}

// Summarize prints the new identifiers and the backup directory. Nothing is
// printed unless the config was updated.
func (o *Orchestrator) Summarize(r *Report) {
	if !r.Applied {
		return
	}

	if r.FullyApplied() {
		o.Sink.Success("Config and MachineGuid updated")
	} else {
		o.Sink.Success("Config updated (MachineGuid %s)", r.RegistryOutcome)
	}

	o.Sink.Title("New identifiers")
	o.Sink.Info("machineId: %s", r.Identity.MachineID)
	o.Sink.Info("macMachineId: %s", r.Identity.MacMachineID)
	o.Sink.Info("devDeviceId: %s", r.Identity.DevDeviceID)
	o.Sink.Info("sqmId: %s", r.Identity.SqmID)

	o.Sink.Title("File structure")
	storageDir := filepath.Dir(o.StoragePath)
	o.Sink.Plain("%s", storageDir)
	o.Sink.Plain("├── %s (modified)", filepath.Base(o.StoragePath))

	backupLabel := o.Backups.Dir
	if filepath.Dir(o.Backups.Dir) == storageDir {
		backupLabel = filepath.Base(o.Backups.Dir)
	}
	o.Sink.Plain("└── %s", backupLabel)

	names, err := o.Backups.List()
	switch {
	case err != nil:
		o.Sink.Plain("    └── (failed to read backups: %v)", err)
	case len(names) == 0:
		o.Sink.Plain("    └── (empty)")
	default:
		for i, name := range names {
			branch := "├──"
			if i == len(names)-1 {
				branch = "└──"
			}
			o.Sink.Plain("    %s %s", branch, name)
		}
	}

	o.Sink.Info("Please restart the application to apply the new configuration")
}
