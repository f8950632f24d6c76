package scheduler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCopiesCollections(t *testing.T) {
	dataDir := t.TempDir()
	backupDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.json"), []byte(`[{"id":1}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "hackathons.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("skip me"), 0o644))

	s := New(dataDir, backupDir)
	require.NoError(t, s.Snapshot())

	dirs, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	snap := filepath.Join(backupDir, dirs[0].Name())
	b, err := os.ReadFile(filepath.Join(snap, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(b))

	_, err = os.Stat(filepath.Join(snap, "hackathons.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(snap, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := New(t.TempDir(), t.TempDir())
	assert.Error(t, s.Start("not a cron expression"))
}
