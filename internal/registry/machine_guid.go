// Package registry updates the machine wide MachineGuid value on windows.
package registry

import (
	"fmt"
	"runtime"

	"github.com/google/uuid"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
)

const (
	KeyPath     = `SOFTWARE\Microsoft\Cryptography`
	FullKeyPath = `HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\Cryptography`
	ValueName   = "MachineGuid"
)

// Result describes one MachineGuid update attempt. Err is informational: the
// mutator never fails the caller.
type Result struct {
	Updated    bool
	Skipped    bool
	OldValue   string
	NewValue   string
	BackupPath string
	Restored   bool
	Err        error
}

type Mutator struct {
	GOOS     string
	Store    Store
	Exporter Exporter
	Backups  *backup.Manager
	Sink     message.Sink
	NewGUID  func() string
}

func NewMutator(store Store, exporter Exporter, backups *backup.Manager, sink message.Sink) *Mutator {
	return &Mutator{
		GOOS:     runtime.GOOS,
		Store:    store,
		Exporter: exporter,
		Backups:  backups,
		Sink:     sink,
		NewGUID:  uuid.NewString,
	}
}

// UpdateMachineGuid replaces MachineGuid with a fresh UUID and reads it back.
// The key is exported beforehand when possible; if the write fails and an
// export exists it is imported again. Without an export there is no fallback.
func (m *Mutator) UpdateMachineGuid() Result {
	if m.GOOS != "windows" {
		m.Sink.Info("Skipping MachineGuid update (not Windows)")
		return Result{Skipped: true, Err: ErrUnsupportedPlatform}
	}

	m.Sink.Info("Updating MachineGuid in the registry...")

	key, err := m.Store.OpenKey(KeyPath)
	if err != nil {
		m.Sink.Error("Cannot open registry key '%s': %v. Make sure you run with administrator rights.", KeyPath, err)
		return Result{Err: err}
	}
	defer func() {
		_ = key.Close()
	}()

	var result Result
	result.OldValue, err = key.GetString(ValueName)
	if err != nil {
		m.Sink.Error("Cannot read current %s: %v. The value may be missing.", ValueName, err)
	} else {
		m.Sink.Info("Current registry value:")
		m.showValue(result.OldValue)
	}

	result.BackupPath = m.exportKey()

	result.NewValue = m.NewGUID()
	if err := key.SetString(ValueName, result.NewValue); err != nil {
		m.Sink.Error("Cannot set registry value %s: %v", ValueName, err)
		result.Restored = m.restore(result.BackupPath)
		result.Err = fmt.Errorf("failed to set %s: %w", ValueName, err)
		return result
	}
	m.Sink.Info("Registry value %s set to: %s", ValueName, result.NewValue)

	verify, err := key.GetString(ValueName)
	if err != nil {
		m.Sink.Error("Cannot read back %s for verification: %v", ValueName, err)
		result.Err = fmt.Errorf("%w: %w", ErrVerify, err)
		return result
	}
	if verify != result.NewValue {
		m.Sink.Error("Registry verification failed: updated value (%s) does not match expected value (%s)", verify, result.NewValue)
		result.Err = fmt.Errorf("%w: got %s, want %s", ErrVerify, verify, result.NewValue)
		return result
	}

	m.Sink.Success("Registry update verified")
	m.showValue(result.NewValue)
	result.Updated = true
	return result
}

// exportKey returns the path of the export, or "" when none was produced.
func (m *Mutator) exportKey() string {
	if _, err := m.Backups.EnsureDir(); err != nil {
		m.Sink.Warning("Cannot create registry backup directory: %v. Continuing without a registry backup.", err)
		return ""
	}

	path := m.Backups.RegistryPath()
	m.Sink.Info("Backing up registry key to: %s", path)
	if err := m.Exporter.Export(FullKeyPath, path); err != nil {
		m.Sink.Warning("Registry backup failed: %v. Continuing without a registry backup.", err)
		return ""
	}
	m.Sink.Success("Registry key backed up")
	return path
}

func (m *Mutator) restore(backupPath string) bool {
	if backupPath == "" {
		m.Sink.Error("No registry backup is available, %s must be checked manually", FullKeyPath)
		return false
	}

	m.Sink.Info("Attempting to restore the registry from backup: %s", backupPath)
	if err := m.Exporter.Import(backupPath); err != nil {
		m.Sink.Error("Registry restore failed: %v. Restore manually from %s", err, backupPath)
		return false
	}
	m.Sink.Success("Registry restored from backup")
	return true
}

func (m *Mutator) showValue(value string) {
	m.Sink.Plain("  %s", FullKeyPath)
	m.Sink.Plain("    %s    REG_SZ    %s", ValueName, value)
}
