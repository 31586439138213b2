package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"outsps/internal/catalog"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the cases in the embedded catalog",
	Args:  cobra.NoArgs,
	RunE:  listCases,
}

func listCases(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tTEMPLATE\tREQUIREMENTS\tDESCRIPTION")
	for _, tc := range cat.Cases {
		fmt.Fprintf(tw, "%s\t%s (%d)\t%d\t%s\n",
			tc.Name, tc.Template, int(tc.Template), len(tc.Requirements()), tc.Description)
	}
	return tw.Flush()
}
