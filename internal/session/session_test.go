package session

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursor-id-reset/cursor-id-reset/internal/backup"
	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
)

func TestStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/home/me/.config/cursor-id-reset")

	history, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, history.Runs)

	started := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	first := Run{
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		State:      "Done",
		Registry:   "skipped",
		Backups: []backup.Record{{
			SourcePath: "/home/me/.config/Cursor/User/globalStorage/storage.json",
			BackupPath: "/home/me/.config/Cursor/User/globalStorage/backups/storage.json.backup_20240309_140507",
			Timestamp:  started,
		}},
		Identity: &identity.Set{MachineID: "m", MacMachineID: "mac", DevDeviceID: "dev", SqmID: "{SQM}"},
	}
	second := Run{StartedAt: started.Add(time.Hour), FinishedAt: started.Add(time.Hour), State: "Failed", Error: "Cursor is still running"}

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	history, err = store.Load()
	require.NoError(t, err)
	require.Len(t, history.Runs, 2)
	assert.Equal(t, "Done", history.Runs[0].State)
	assert.True(t, history.Runs[0].StartedAt.Equal(started))
	assert.Equal(t, first.Backups[0].BackupPath, history.Runs[0].Backups[0].BackupPath)
	require.NotNil(t, history.Runs[0].Identity)
	assert.Equal(t, "{SQM}", history.Runs[0].Identity.SqmID)
	assert.Nil(t, history.Runs[1].Identity)
	assert.Equal(t, "Cursor is still running", history.Runs[1].Error)

	info, err := fs.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "history.yaml", info.Name())
}

func TestStoreReset(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/state")
	require.NoError(t, store.Append(Run{State: "Done"}))

	require.NoError(t, store.Reset())
	history, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, history.Runs)

	require.NoError(t, store.Reset())
}

func TestStoreLoadCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/state")
	require.NoError(t, afero.WriteFile(fs, store.Path(), []byte("runs: [unterminated"), 0600))

	_, err := store.Load()
	assert.Error(t, err)
}
