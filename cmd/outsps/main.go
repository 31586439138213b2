package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"outsps/internal/core"
)

var (
	// Global flags
	envFiles []string
	verbose  bool

	// Set by PersistentPreRunE
	cfg    *core.Config
	logger core.Logger
)

// errRunFailed signals a completed run with failed or aborted outcomes.
var errRunFailed = errors.New("conformance run failed")

var rootCmd = &cobra.Command{
	Use:   "outsps",
	Short: "List schema conformance suite for the SharePoint Lists web service",
	Long: `outsps provisions lists on a site, fetches their schema with GetList and
checks each field's ID, type and CHOICES/MAPPINGS against an embedded
catalog of expectations. Every check is recorded against the requirement it
verifies and the run report is stored under OUTSPS_REPORT_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := core.LoadConfig(envFiles...)
		if err != nil {
			return err
		}
		if verbose {
			loaded.LogLevel = "debug"
		}
		cfg = loaded
		sl := core.NewSlogFromConfig(os.Stderr, cfg)
		slog.SetDefault(sl)
		logger = core.FromSlog(sl)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every check at debug level")

	rootCmd.AddCommand(runCmd, casesCmd, inspectCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
