package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"outsps/internal/lists"
	"outsps/internal/verify"
)

var inspectFields []string

var inspectCmd = &cobra.Command{
	Use:   "inspect <getlist-response.xml>",
	Short: "Check the CHOICES and MAPPINGS of fields in a saved GetList response",
	Long: `Runs the choice relationship and fragment schema checks on a GetList SOAP
response captured earlier, without contacting a server.

Example:
  outsps inspect tasks.xml --field Priority --field Status`,
	Args: cobra.ExactArgs(1),
	RunE: inspectResponse,
}

func init() {
	inspectCmd.Flags().StringSliceVar(&inspectFields, "field", []string{"Priority"}, "field to inspect (repeatable)")
}

func inspectResponse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	list, err := lists.ParseGetListResponse(raw)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "List %s (%s, template %s): %d fields\n", list.Title, list.ID, list.Template, list.Fields.Len())

	v := verify.New(logger, nil)
	failed := false
	for _, name := range inspectFields {
		field, err := verify.LookupField(list.Fields, name)
		if err != nil {
			fmt.Fprintf(out, "  %-16s ERROR %v\n", name, err)
			failed = true
			continue
		}
		fmt.Fprintf(out, "  %-16s type=%s id=%s choices=%d mappings=%d\n",
			name, field.Type, field.ID, field.Choices.Len(), field.Mappings.Len())

		if field.Choices != nil && field.Mappings != nil {
			ok, err := v.VerifyChoicesAndMappingsRelationship(field)
			failed = printCheck(out, "relationship", ok, err) || failed
		}

		ok, err := v.VerifyChoicesAndMappingsSchema(raw, name)
		failed = printCheck(out, "schema", ok, err) || failed
	}

	if failed {
		return errRunFailed
	}
	return nil
}

// printCheck prints one check result and returns true if it did not pass.
func printCheck(w io.Writer, check string, ok bool, err error) bool {
	switch {
	case err != nil:
		fmt.Fprintf(w, "    %-12s ERROR %v\n", check, err)
		return true
	case !ok:
		fmt.Fprintf(w, "    %-12s FAIL\n", check)
		return true
	default:
		fmt.Fprintf(w, "    %-12s ok\n", check)
		return false
	}
}
