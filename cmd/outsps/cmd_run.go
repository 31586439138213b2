package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"outsps/internal/catalog"
	"outsps/internal/core"
	"outsps/internal/lists"
	"outsps/internal/repository"
	"outsps/internal/verify"
	"outsps/pkg/schema"
)

// teardownTimeout bounds list cleanup after the run context is gone.
const teardownTimeout = 2 * time.Minute

var (
	runCases []string
	runMock  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run conformance cases against the configured site",
	Long: `Provisions one list per case, checks its schema, records every requirement
outcome and deletes the lists again. Exits non-zero when any check failed or
any case aborted.

Examples:
  outsps run
  outsps run --case tasks --case links
  outsps run --mock`,
	Args: cobra.NoArgs,
	RunE: runSuite,
}

func init() {
	runCmd.Flags().StringSliceVar(&runCases, "case", nil, "case to run (repeatable, default all)")
	runCmd.Flags().BoolVar(&runMock, "mock", false, "run against the in-memory Lists service")
}

func runSuite(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	cases, err := cat.Filter(runCases...)
	if err != nil {
		return err
	}

	service, siteURL, err := newListService(runMock)
	if err != nil {
		return err
	}

	runID, err := schema.NewRunID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	repo := repository.NewReportRepository(cfg.ReportDir)
	lock := repo.NewLock(runID)
	if err := lock.Acquire(); err != nil {
		return &core.LockError{Path: lock.Path(), RunID: runID, Err: err}
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release report lock", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	suite := core.NewSuiteContext(runID, service, logger)
	recorder := core.NewRecorder(runID, siteURL, logger)
	runner := core.NewRunner(suite, verify.New(logger, nil), recorder, logger)

	logger.Info("Run started", "run_id", runID, "site_url", siteURL, "cases", len(cases))

	report, runErr := runner.Run(ctx, cases)

	teardownCtx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	if err := suite.Close(teardownCtx); err != nil {
		logger.Error("Teardown incomplete", "run_id", runID, "error", err)
	}

	if err := repo.WriteReport(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	summary := report.Summary()
	printSummary(cmd.OutOrStdout(), report)
	logger.Info("Run finished",
		"run_id", runID,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"aborted", summary.Aborted,
	)

	if runErr != nil {
		return runErr
	}
	if !summary.OK() {
		return errRunFailed
	}
	return nil
}

// newListService returns the live client, or the mock when offline is set.
func newListService(offline bool) (core.ListService, string, error) {
	if offline {
		return lists.NewMockService(), "mock://lists", nil
	}

	if err := cfg.ValidateLive(); err != nil {
		return nil, "", err
	}
	client, err := lists.NewClient(&lists.Config{
		SiteURL:  cfg.SiteURL,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, "", &core.ValidationError{Field: "OUTSPS_SITE_URL", Message: err.Error(), Err: err}
	}
	return client, cfg.SiteURL, nil
}

func printSummary(w io.Writer, report *schema.RunReport) {
	s := report.Summary()
	fmt.Fprintf(w, "Run %s: %d passed, %d failed, %d aborted\n", report.RunID, s.Passed, s.Failed, s.Aborted)
	for _, o := range report.Outcomes {
		switch {
		case o.Aborted:
			fmt.Fprintf(w, "  ABORT %-12s %-10s %s\n", o.Case, o.RequirementID, o.Error)
		case !o.Passed:
			fmt.Fprintf(w, "  FAIL  %-12s %-10s %s\n", o.Case, o.RequirementID, o.Description)
		}
	}
}
