// cmd/benchpct/view.go
package benchpct

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/benchpct/internal/config"
	"github.com/mwiater/benchpct/internal/harness"
	"github.com/mwiater/benchpct/internal/tui"
)

// viewCmd implements 'view', an interactive percentile table.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse percentiles in an interactive table",
	Long:  `The 'view' command computes percentiles (or reads a saved JSON report with --report) and opens them in a terminal table. Tab cycles through groups, enter shows a case, q quits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		rows, err := harness.LoadRows(cfg)
		if err != nil {
			return err
		}
		title := cfg.Input
		if cfg.Report != "" {
			title = cfg.Report
		}
		return tui.Run(title, rows)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addInputFlags(viewCmd)
}
