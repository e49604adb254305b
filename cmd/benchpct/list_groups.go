// cmd/benchpct/list_groups.go
package benchpct

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/benchpct/internal/config"
	"github.com/mwiater/benchpct/internal/group"
	"github.com/mwiater/benchpct/internal/harness"
	"github.com/mwiater/benchpct/internal/stats"
)

// listGroupsCmd implements 'list groups', which prints the group each
// benchmark case belongs to along with a short summary per group.
var listGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List benchmark groups and their cases",
	Long:  `The 'groups' subcommand partitions the benchmark cases by the prefix before the first underscore and prints every group with its cases and the spread of the first requested percentile.`,
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
		printGroups(cmd.OutOrStdout(), group.Classify(rows))
		return nil
	},
}

func init() {
	listCmd.AddCommand(listGroupsCmd)
	addInputFlags(listGroupsCmd)
}

func printGroups(w io.Writer, groups []group.Group) {
	r := lipgloss.NewRenderer(w)
	groupStyle := r.NewStyle().Foreground(lipgloss.Color("255"))
	caseStyle := r.NewStyle().Foreground(lipgloss.Color("86"))
	summaryStyle := r.NewStyle().Foreground(lipgloss.Color("244"))

	for i, g := range groups {
		s := harness.Summarize(groups[i : i+1])[0]
		fmt.Fprintln(w, groupStyle.Render(fmt.Sprintf("%s: (%d cases)", g.Key, s.Cases)))
		for _, row := range g.Rows {
			fmt.Fprintln(w, "  >>> "+caseStyle.Render(row.Case))
		}
		if s.Fastest != "" {
			fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("  %s mean %.3f ns, std %.3f ns, fastest %s, slowest %s",
				stats.Label(s.Percentile), s.Mean, s.Std, s.Fastest, s.Slowest)))
		}
		fmt.Fprintln(w)
	}
}
