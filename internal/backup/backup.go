// Package backup captures files before they are mutated. Backups are
// timestamped, never overwritten and never pruned.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

const TimestampLayout = "20060102_150405"

type Record struct {
	SourcePath string    `yaml:"source"`
	BackupPath string    `yaml:"backup"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// FileName is the name a backup of base gets at ts.
func FileName(base string, ts time.Time) string {
	return base + ".backup_" + ts.Format(TimestampLayout)
}

// RegistryFileName is the name of a registry export taken at ts.
func RegistryFileName(ts time.Time) string {
	return "MachineGuid_" + ts.Format(TimestampLayout) + ".reg"
}

type Manager struct {
	Fs  afero.Fs
	Dir string
	Now func() time.Time
}

func NewManager(fs afero.Fs, dir string) *Manager {
	return &Manager{
		Fs:  fs,
		Dir: dir,
		Now: time.Now,
	}
}

// EnsureDir creates the backup directory if it is missing.
func (m *Manager) EnsureDir() (created bool, err error) {
	exists, err := afero.DirExists(m.Fs, m.Dir)
	if err != nil {
		return false, fmt.Errorf("failed to check backup directory '%s': %w", m.Dir, err)
	}
	if exists {
		return false, nil
	}
	if err := m.Fs.MkdirAll(m.Dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create backup directory '%s': %w", m.Dir, err)
	}
	return true, nil
}

// File copies source, its permissions and modification time into the backup
// directory. A missing source yields a nil record and no error.
func (m *Manager) File(source string) (*Record, error) {
	info, err := m.Fs.Stat(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat '%s': %w", source, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to back up '%s': is a directory", source)
	}

	if _, err := m.EnsureDir(); err != nil {
		return nil, err
	}

	ts := m.Now()
	dest := filepath.Join(m.Dir, FileName(filepath.Base(source), ts))
	if err := m.copy(source, dest, info); err != nil {
		return nil, err
	}

	return &Record{
		SourcePath: source,
		BackupPath: dest,
		Timestamp:  ts,
	}, nil
}

// RegistryPath reserves the path a registry export taken now should use.
func (m *Manager) RegistryPath() string {
	return filepath.Join(m.Dir, RegistryFileName(m.Now()))
}

func (m *Manager) copy(source, dest string, info os.FileInfo) error {
	exists, err := afero.Exists(m.Fs, dest)
	if err != nil {
		return fmt.Errorf("failed to check backup file '%s': %w", dest, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrBackupExists, dest)
	}

	in, err := m.Fs.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", source, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := m.Fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrBackupExists, dest)
		}
		return fmt.Errorf("failed to create backup file '%s': %w", dest, err)
	}

	// a partial copy must not be mistaken for a backup
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = m.Fs.Remove(dest)
		return fmt.Errorf("failed to copy '%s' to '%s': %w", source, dest, err)
	}
	if err := out.Close(); err != nil {
		_ = m.Fs.Remove(dest)
		return fmt.Errorf("failed to write backup file '%s': %w", dest, err)
	}

	if err := m.Fs.Chmod(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to copy permissions to '%s': %w", dest, err)
	}
	if err := m.Fs.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to copy timestamps to '%s': %w", dest, err)
	}
	return nil
}

// List returns the names of the regular files in the backup directory,
// sorted. A missing directory is empty.
func (m *Manager) List() ([]string, error) {
	exists, err := afero.DirExists(m.Fs, m.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check backup directory '%s': %w", m.Dir, err)
	}
	if !exists {
		return nil, nil
	}

	entries, err := afero.ReadDir(m.Fs, m.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory '%s': %w", m.Dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Mode().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
