// Package session keeps a durable history of reset runs.
package session

import (
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
)

const historyFileName = "history.yaml"

type Run struct {
	StartedAt  time.Time       `yaml:"startedAt"`
	FinishedAt time.Time       `yaml:"finishedAt"`
	State      string          `yaml:"state"`
	Error      string          `yaml:"error,omitempty"`
	Registry   string          `yaml:"registry,omitempty"`
	Backups    []backup.Record `yaml:"backups,omitempty"`
	// Identity is only recorded when the new values were written.
	Identity *identity.Set `yaml:"identity,omitempty"`
}

type History struct {
	Runs []Run `yaml:"runs"`
}

type Store struct {
	Fs  afero.Fs
	Dir string
}

func NewStore(fs afero.Fs, dir string) Store {
	return Store{Fs: fs, Dir: dir}
}

func (s Store) Path() string {
	return filepath.Join(s.Dir, historyFileName)
}

// Append adds run to the end of the stored history.
func (s Store) Append(run Run) error {
	history, err := s.Load()
	if err != nil {
		return err
	}
	history.Runs = append(history.Runs, run)
	return s.Save(history)
}
