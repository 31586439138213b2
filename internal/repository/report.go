package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"outsps/pkg/schema"
)

const (
	reportsDir  = "reports"
	latestFile  = "latest.yaml"
	historyFile = "history.yaml"
)

// ErrReportNotFound is returned when no report exists for the requested run.
var ErrReportNotFound = errors.New("report not found")

var runIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// History is the on-disk list of run summaries, oldest first.
type History struct {
	Runs []schema.RunSummary `yaml:"runs"`
}

// ReportRepository stores run reports under a base directory:
//
//	<base>/reports/<run-id>.yaml
//	<base>/reports/latest.yaml
//	<base>/history.yaml
type ReportRepository struct {
	baseDir string
}

// NewReportRepository creates a repository rooted at baseDir.
func NewReportRepository(baseDir string) *ReportRepository {
	return &ReportRepository{baseDir: baseDir}
}

// BaseDir returns the repository root.
func (r *ReportRepository) BaseDir() string {
	return r.baseDir
}

// NewLock returns the lock guarding this repository. The lock file sits next
// to the base directory because commits replace the directory itself.
func (r *ReportRepository) NewLock(runID string) *FileLock {
	return NewFileLock(filepath.Clean(r.baseDir)+".lock", runID)
}

// WriteReport stores report as its own file and as latest.yaml, and appends
// its summary to the history, in one transaction.
func (r *ReportRepository) WriteReport(report *schema.RunReport) error {
	if err := validateRunID(report.RunID); err != nil {
		return err
	}

	return r.update(func(tx *CopyOnWriteTx) error {
		if err := tx.PutYAML(reportPath(report.RunID), report); err != nil {
			return err
		}
		if err := tx.PutYAML(reportsDir+"/"+latestFile, report); err != nil {
			return err
		}
		return appendHistory(tx, report.Summary())
	})
}

// AppendHistory appends summary to the history file.
func (r *ReportRepository) AppendHistory(summary schema.RunSummary) error {
	return r.update(func(tx *CopyOnWriteTx) error {
		return appendHistory(tx, summary)
	})
}

// ReadReport reads the report of runID.
func (r *ReportRepository) ReadReport(runID string) (*schema.RunReport, error) {
	if err := validateRunID(runID); err != nil {
		return nil, err
	}
	return r.readReport(reportPath(runID))
}

// ReadLatest reads the most recently written report.
func (r *ReportRepository) ReadLatest() (*schema.RunReport, error) {
	return r.readReport(filepath.Join(reportsDir, latestFile))
}

// ReadHistory reads every recorded run summary. A missing history is empty.
func (r *ReportRepository) ReadHistory() (*History, error) {
	data, err := os.ReadFile(filepath.Join(r.baseDir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &History{Runs: []schema.RunSummary{}}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var h History
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return &h, nil
}

func (r *ReportRepository) readReport(relativePath string) (*schema.RunReport, error) {
	data, err := os.ReadFile(filepath.Join(r.baseDir, relativePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", relativePath, ErrReportNotFound)
		}
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report schema.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", relativePath, err)
	}
	return &report, nil
}

// update runs fn inside a transaction, committing on success.
func (r *ReportRepository) update(fn func(tx *CopyOnWriteTx) error) error {
	tx := NewCopyOnWriteTx(r.baseDir)
	if err := tx.Begin(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("Rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("Rollback failed", "error", rbErr)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func appendHistory(tx *CopyOnWriteTx, summary schema.RunSummary) error {
	h := History{Runs: []schema.RunSummary{}}
	if _, err := tx.GetYAML(historyFile, &h); err != nil {
		return err
	}
	h.Runs = append(h.Runs, summary)
	return tx.PutYAML(historyFile, h)
}

func reportPath(runID string) string {
	return reportsDir + "/" + runID + ".yaml"
}

func validateRunID(runID string) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if runID == "latest" || !runIDPattern.MatchString(runID) {
		return fmt.Errorf("invalid run id %q", runID)
	}
	return nil
}
