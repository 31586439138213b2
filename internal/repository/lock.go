package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// lockAttempts bounds retries when the lock file is replaced between open
// and flock.
const lockAttempts = 3

// LockHolder describes the run holding a report lock. It is the content of
// the lock file.
type LockHolder struct {
	RunID    string    `yaml:"run_id"`
	PID      int       `yaml:"pid"`
	Hostname string    `yaml:"hostname"`
	Since    time.Time `yaml:"since"`
}

// FileLock keeps two runs from writing the same report directory. It is an
// exclusive, non-blocking flock on a file that names the holding run.
type FileLock struct {
	path  string
	runID string
	file  *os.File
}

// NewFileLock returns an unheld lock at path for runID.
func NewFileLock(path, runID string) *FileLock {
	return &FileLock{path: path, runID: runID}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire takes the lock or reports which run holds it. The kernel drops a
// flock when its process exits, so a file left by a crashed run is reused
// and a held lock always belongs to a live run.
func (l *FileLock) Acquire() error {
	err := l.tryLock()
	if !errors.Is(err, syscall.EWOULDBLOCK) {
		return err
	}

	holder, readErr := l.Holder()
	if readErr != nil {
		return fmt.Errorf("lock %s is held: %w", l.path, err)
	}
	return fmt.Errorf("reports locked by run %s (PID %d on %s, %v ago)",
		holder.RunID, holder.PID, holder.Hostname, time.Since(holder.Since).Round(time.Second))
}

// Holder reads the run recorded in the lock file.
func (l *FileLock) Holder() (LockHolder, error) {
	var h LockHolder
	data, err := os.ReadFile(l.path)
	if err != nil {
		return h, err
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("decode lock file: %w", err)
	}
	return h, nil
}

// Release unlocks and removes the lock file. Releasing an unheld lock does
// nothing.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil

	// Unlink while still holding the flock so no new run locks this inode.
	removeErr := os.Remove(l.path)
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_UN); err != nil {
		slog.Warn("Failed to unlock report lock", "path", l.path, "error", err)
	}
	if err := file.Close(); err != nil {
		slog.Warn("Failed to close report lock", "path", l.path, "error", err)
	}
	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", removeErr)
	}
	return nil
}

// tryLock opens the lock file, flocks it and records this run as holder.
// It returns an error wrapping syscall.EWOULDBLOCK when another run holds it.
func (l *FileLock) tryLock() error {
	var file *os.File
	for attempt := 1; file == nil; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
		if err != nil {
			return fmt.Errorf("open lock file: %w", err)
		}
		if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			_ = f.Close()
			return fmt.Errorf("flock %s: %w", l.path, err)
		}

		// The previous holder may have unlinked the path between our open and
		// flock, leaving us holding an orphaned inode.
		current, statErr := os.Stat(l.path)
		locked, fstatErr := f.Stat()
		if statErr == nil && fstatErr == nil && os.SameFile(current, locked) {
			file = f
			break
		}
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		if attempt == lockAttempts {
			return fmt.Errorf("lock file %s keeps changing", l.path)
		}
	}

	hostname, _ := os.Hostname()
	data, err := yaml.Marshal(LockHolder{
		RunID:    l.runID,
		PID:      os.Getpid(),
		Hostname: hostname,
		Since:    time.Now(),
	})
	if err == nil {
		err = file.Truncate(0)
	}
	if err == nil {
		_, err = file.WriteAt(data, 0)
	}
	if err != nil {
		_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		_ = file.Close()
		return fmt.Errorf("record lock holder: %w", err)
	}

	l.file = file
	return nil
}
