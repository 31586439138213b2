package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"outsps/internal/repository"
	"outsps/pkg/schema"
)

var reportHistory bool

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Show a stored run report",
	Long: `Prints the report of the given run, or of the latest run when no run ID is
given. With --history prints one line per recorded run instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: showReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportHistory, "history", false, "list every recorded run")
}

func showReport(cmd *cobra.Command, args []string) error {
	repo := repository.NewReportRepository(cfg.ReportDir)
	out := cmd.OutOrStdout()

	if reportHistory {
		history, err := repo.ReadHistory()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tSTARTED\tPASSED\tFAILED\tABORTED")
		for _, s := range history.Runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
				s.RunID, s.StartedAt.Format("2006-01-02 15:04:05"), s.Passed, s.Failed, s.Aborted)
		}
		return tw.Flush()
	}

	var (
		report *schema.RunReport
		err    error
	)
	if len(args) == 1 {
		report, err = repo.ReadReport(args[0])
	} else {
		report, err = repo.ReadLatest()
	}
	if errors.Is(err, repository.ErrReportNotFound) {
		return fmt.Errorf("no report found in %s", repo.BaseDir())
	}
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
