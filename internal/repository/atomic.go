package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CopyOnWriteTx stages YAML documents for a report directory in a sibling copy
// and swaps the copy into place on Commit. Readers of the base directory see
// either the old tree or the new one.
type CopyOnWriteTx struct {
	baseDir    string
	stagingDir string
	backupDir  string
	done       bool
}

// NewCopyOnWriteTx prepares a transaction over baseDir. Nothing touches the
// disk until Begin.
func NewCopyOnWriteTx(baseDir string) *CopyOnWriteTx {
	base := filepath.Clean(baseDir)
	stamp := time.Now().UnixNano()
	return &CopyOnWriteTx{
		baseDir:    base,
		stagingDir: fmt.Sprintf("%s.staging.%d", base, stamp),
		backupDir:  fmt.Sprintf("%s.previous.%d", base, stamp),
	}
}

// Begin snapshots the base directory into the staging directory. A base
// directory that does not exist yet stages an empty reports layout.
func (tx *CopyOnWriteTx) Begin() error {
	_, err := os.Stat(tx.baseDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Join(tx.stagingDir, reportsDir), 0o755); err != nil {
			return fmt.Errorf("create staging directory: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("stat %s: %w", tx.baseDir, err)
	}

	if err := os.CopyFS(tx.stagingDir, os.DirFS(tx.baseDir)); err != nil {
		_ = os.RemoveAll(tx.stagingDir)
		return fmt.Errorf("snapshot %s: %w", tx.baseDir, err)
	}
	return nil
}

// PutYAML encodes v and stages it at name, a slash-separated path inside the
// report directory.
func (tx *CopyOnWriteTx) PutYAML(name string, v any) error {
	path, err := tx.staged(name)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}

// GetYAML decodes the staged document at name into v. It reports false, and
// leaves v alone, when the document does not exist.
func (tx *CopyOnWriteTx) GetYAML(name string, v any) (bool, error) {
	path, err := tx.staged(name)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read staged %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// Commit replaces the base directory with the staging directory. When the
// swap fails halfway the previous directory is put back.
func (tx *CopyOnWriteTx) Commit() error {
	if tx.done {
		return errors.New("transaction already finished")
	}

	_, err := os.Stat(tx.baseDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.Rename(tx.stagingDir, tx.baseDir); err != nil {
			return fmt.Errorf("publish %s: %w", tx.baseDir, err)
		}
	case err != nil:
		return fmt.Errorf("stat %s: %w", tx.baseDir, err)
	default:
		if err := os.Rename(tx.baseDir, tx.backupDir); err != nil {
			return fmt.Errorf("move aside %s: %w", tx.baseDir, err)
		}
		if err := os.Rename(tx.stagingDir, tx.baseDir); err != nil {
			if restoreErr := os.Rename(tx.backupDir, tx.baseDir); restoreErr != nil {
				return fmt.Errorf("publish %s: %w (restore also failed: %v)", tx.baseDir, err, restoreErr)
			}
			return fmt.Errorf("publish %s: %w", tx.baseDir, err)
		}
		if err := os.RemoveAll(tx.backupDir); err != nil {
			slog.Warn("Failed to remove previous report directory", "path", tx.backupDir, "error", err)
		}
	}

	tx.done = true
	return nil
}

// Rollback drops the staging directory. It is a no-op after Commit.
func (tx *CopyOnWriteTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	if err := os.RemoveAll(tx.stagingDir); err != nil {
		return fmt.Errorf("discard staging directory: %w", err)
	}
	return nil
}

// StagingDir returns the directory holding uncommitted changes.
func (tx *CopyOnWriteTx) StagingDir() string {
	return tx.stagingDir
}

// staged resolves name inside the staging directory, refusing paths that
// would leave it.
func (tx *CopyOnWriteTx) staged(name string) (string, error) {
	if tx.done {
		return "", errors.New("transaction already finished")
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("path %q is outside the report directory", name)
	}
	return filepath.Join(tx.stagingDir, local), nil
}
