package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outsps/pkg/schema"
)

func TestCopyOnWriteTx_CreatesBaseDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".outsps")

	tx := NewCopyOnWriteTx(base)
	require.NoError(t, tx.Begin())
	assert.DirExists(t, filepath.Join(tx.StagingDir(), reportsDir))

	require.NoError(t, tx.PutYAML("reports/RUN-1.yaml", schema.RunReport{RunID: "RUN-1"}))
	require.NoError(t, tx.Commit())

	data, err := os.ReadFile(filepath.Join(base, "reports", "RUN-1.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id: RUN-1")
	assert.NoDirExists(t, tx.StagingDir())
}

func TestCopyOnWriteTx_StagesUntilCommit(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".outsps")
	seed := NewCopyOnWriteTx(base)
	require.NoError(t, seed.Begin())
	require.NoError(t, seed.PutYAML(historyFile, History{Runs: []schema.RunSummary{{RunID: "RUN-1", Passed: 3}}}))
	require.NoError(t, seed.Commit())

	tx := NewCopyOnWriteTx(base)
	require.NoError(t, tx.Begin())

	var h History
	found, err := tx.GetYAML(historyFile, &h)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, h.Runs, 1)

	h.Runs = append(h.Runs, schema.RunSummary{RunID: "RUN-2", Failed: 1})
	require.NoError(t, tx.PutYAML(historyFile, h))

	before, err := NewReportRepository(base).ReadHistory()
	require.NoError(t, err)
	assert.Len(t, before.Runs, 1, "base directory changed before commit")

	require.NoError(t, tx.Commit())

	after, err := NewReportRepository(base).ReadHistory()
	require.NoError(t, err)
	require.Len(t, after.Runs, 2)
	assert.Equal(t, "RUN-2", after.Runs[1].RunID)

	matches, err := filepath.Glob(base + ".previous.*")
	require.NoError(t, err)
	assert.Empty(t, matches, "previous directory left behind")
}

func TestCopyOnWriteTx_Rollback(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".outsps")
	require.NoError(t, os.MkdirAll(filepath.Join(base, reportsDir), 0o755))

	tx := NewCopyOnWriteTx(base)
	require.NoError(t, tx.Begin())
	require.NoError(t, tx.PutYAML("reports/RUN-9.yaml", schema.RunReport{RunID: "RUN-9"}))
	require.NoError(t, tx.Rollback())

	assert.NoDirExists(t, tx.StagingDir())
	assert.NoFileExists(t, filepath.Join(base, "reports", "RUN-9.yaml"))

	require.NoError(t, tx.Rollback(), "second rollback is a no-op")
	assert.Error(t, tx.PutYAML("reports/RUN-9.yaml", schema.RunReport{}))
}

func TestCopyOnWriteTx_FinishedTransaction(t *testing.T) {
	tx := NewCopyOnWriteTx(filepath.Join(t.TempDir(), ".outsps"))
	require.NoError(t, tx.Begin())
	require.NoError(t, tx.Commit())

	assert.Error(t, tx.Commit())
	assert.Error(t, tx.PutYAML(historyFile, History{}))
	assert.NoError(t, tx.Rollback())
}

func TestCopyOnWriteTx_GetMissingDocument(t *testing.T) {
	tx := NewCopyOnWriteTx(filepath.Join(t.TempDir(), ".outsps"))
	require.NoError(t, tx.Begin())
	defer tx.Rollback()

	h := History{Runs: []schema.RunSummary{{RunID: "keep"}}}
	found, err := tx.GetYAML(historyFile, &h)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "keep", h.Runs[0].RunID)
}

func TestCopyOnWriteTx_RejectsPathsOutsideDirectory(t *testing.T) {
	tx := NewCopyOnWriteTx(filepath.Join(t.TempDir(), ".outsps"))
	require.NoError(t, tx.Begin())
	defer tx.Rollback()

	for _, name := range []string{"../escape.yaml", "/etc/passwd", ""} {
		err := tx.PutYAML(name, History{})
		require.Error(t, err, name)
		_, err = tx.GetYAML(name, &History{})
		require.Error(t, err, name)
	}
}

func TestCopyOnWriteTx_CorruptDocument(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".outsps")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, historyFile), []byte("runs: [\n"), 0o644))

	tx := NewCopyOnWriteTx(base)
	require.NoError(t, tx.Begin())
	defer tx.Rollback()

	_, err := tx.GetYAML(historyFile, &History{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
