// cmd/benchpct/list_commands.go
package benchpct

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which draws the command tree with
// each command's short description beside it.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the command tree with short descriptions",
	Long:  `The 'commands' subcommand draws every available command as a tree rooted at benchpct, with the short description of each command aligned in a second column. Cobra's generated help and completion commands are left out.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printCommandTree(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// treeLine is one rendered node: the branch drawing plus command name, and
// the description shown next to it.
type treeLine struct {
	branch string
	short  string
}

func printCommandTree(w io.Writer, root *cobra.Command) {
	lines := []treeLine{{branch: root.Name(), short: root.Short}}
	lines = appendChildren(lines, root, "")

	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.branch))
	}

	r := lipgloss.NewRenderer(w)
	nameStyle := r.NewStyle().Foreground(lipgloss.Color("86")).Width(width + 2)
	shortStyle := r.NewStyle().Foreground(lipgloss.Color("244"))
	for _, l := range lines {
		fmt.Fprintln(w, nameStyle.Render(l.branch)+shortStyle.Render(l.short))
	}
}

// appendChildren adds the available subcommands of cmd, drawing tree
// connectors under prefix.
func appendChildren(lines []treeLine, cmd *cobra.Command, prefix string) []treeLine {
	var children []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			children = append(children, c)
		}
	}
	for i, c := range children {
		connector, indent := "├── ", "│   "
		if i == len(children)-1 {
			connector, indent = "└── ", "    "
		}
		lines = append(lines, treeLine{branch: prefix + connector + c.Name(), short: c.Short})
		lines = appendChildren(lines, c, prefix+indent)
	}
	return lines
}
