package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), ".outsps.lock"), "RUN-a")

	require.NoError(t, lock.Acquire())

	holder, err := lock.Holder()
	require.NoError(t, err)
	assert.Equal(t, "RUN-a", holder.RunID)
	assert.Equal(t, os.Getpid(), holder.PID)
	assert.WithinDuration(t, time.Now(), holder.Since, time.Minute)

	require.NoError(t, lock.Release())
	assert.NoFileExists(t, lock.Path())
	assert.NoError(t, lock.Release())
}

func TestFileLock_SecondRunIsRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".outsps.lock")
	first := NewFileLock(path, "RUN-a")
	second := NewFileLock(path, "RUN-b")

	require.NoError(t, first.Acquire())
	defer first.Release()

	err := second.Acquire()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by run RUN-a")

	holder, err := second.Holder()
	require.NoError(t, err)
	assert.Equal(t, "RUN-a", holder.RunID, "refused run must not overwrite the holder")
}

func TestFileLock_ReacquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".outsps.lock")

	first := NewFileLock(path, "RUN-a")
	require.NoError(t, first.Acquire())
	require.NoError(t, first.Release())

	second := NewFileLock(path, "RUN-b")
	require.NoError(t, second.Acquire())
	defer second.Release()
}

func TestFileLock_ReusesFileLeftByCrashedRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".outsps.lock")
	leftover, err := yaml.Marshal(LockHolder{
		RunID: "RUN-crashed",
		PID:   999999,
		Since: time.Now().Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, leftover, 0o644))

	lock := NewFileLock(path, "RUN-new")
	require.NoError(t, lock.Acquire())
	defer lock.Release()

	holder, err := lock.Holder()
	require.NoError(t, err)
	assert.Equal(t, "RUN-new", holder.RunID)
	assert.Equal(t, os.Getpid(), holder.PID)
}

func TestFileLock_LongRunningHolderIsNotTakenOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".outsps.lock")
	old := NewFileLock(path, "RUN-old")
	require.NoError(t, old.Acquire())

	// Rewrite the holder in place so the flocked inode stays the same.
	aged, err := yaml.Marshal(LockHolder{
		RunID: "RUN-old",
		PID:   os.Getpid(),
		Since: time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, aged, 0o644))

	lock := NewFileLock(path, "RUN-new")
	err = lock.Acquire()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by run RUN-old")

	holder, err := lock.Holder()
	require.NoError(t, err)
	assert.Equal(t, "RUN-old", holder.RunID)

	require.NoError(t, old.Release())
	require.NoError(t, lock.Acquire())
	defer lock.Release()
}
