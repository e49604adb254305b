// cmd/benchpct/format.go
package benchpct

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/benchpct/internal/chart"
	"github.com/mwiater/benchpct/internal/config"
	"github.com/mwiater/benchpct/internal/harness"
	"github.com/mwiater/benchpct/internal/report"
)

// formatCmd implements 'format', the full pipeline: aggregate, print, save
// and optionally plot.
var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Compute percentiles and print, save or plot them",
	Long: `The 'format' command loads a Google Benchmark JSON file, computes the requested
percentiles of one timing field per benchmark case, and prints them. With
--output the report is also saved (csv, json, yaml or txt, inferred from the
extension unless --format is given); with --plot a PNG bar chart is drawn.`,
	Example: `  benchpct format -i results.json
  benchpct format -i results.json -o out/report.csv --plot --plot-mode group`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		_, err = harness.Run(cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)

	f := formatCmd.Flags()
	addInputFlags(formatCmd)
	f.StringP("output", "o", "", "report file to write")
	f.String("format", "", "report format: "+strings.Join(report.FormatNames, ", ")+" (default: from --output extension)")
	f.Bool("plot", false, "draw a PNG bar chart")
	f.String("plot-file", "percentiles.png", "chart file")
	f.String("plot-mode", "percentile", "chart layout: "+strings.Join(chart.ModeNames, ", "))
	f.Int("dpi", 200, "chart resolution")
}

// addInputFlags registers the flags shared by every command that reads
// benchmark results.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "Google Benchmark JSON file")
	f.String("report", "", "previously written JSON report, instead of --input")
	f.String("field", "real_time", "timing field: real_time or cpu_time")
	f.String("percentiles", "50,75,90,95,99,99.9", "comma-separated percentiles in [0, 100]")
}
