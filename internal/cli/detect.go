package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dooshek/zoomleaver/internal/detection"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var detectJSON bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Test Zoom window detection",
	Long:  "List the windows that look like Zoom, the ones kept after filtering, and the participant count read from their titles.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detector, err := windowdetect.New()
		if err != nil {
			return err
		}
		report := detection.Detect(windowdetect.NewEnumerator(detector).Snapshot())
		return printReport(cmd.OutOrStdout(), report, detectJSON)
	},
}

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Print the report as JSON")
}

func printReport(w io.Writer, report detection.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	color.New(color.FgCyan).Fprintln(w, "🔍 Testing Zoom window detection...")
	fmt.Fprint(w, report.String())
	return nil
}
