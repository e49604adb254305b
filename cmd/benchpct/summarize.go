// cmd/benchpct/summarize.go
package benchpct

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/benchpct/internal/artifacts"
)

// summarizeCmd represents the 'summarize' command group.
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Group commands for CI summaries",
	Long:  `The 'summarize' command groups subcommands that print markdown summaries, suitable for a CI step summary. It performs no action on its own.`,
}

// summarizeArtifactsCmd implements 'summarize artifacts <dir>'.
var summarizeArtifactsCmd = &cobra.Command{
	Use:   "artifacts <dir>",
	Short: "Print a markdown table of build artifacts",
	Long:  `The 'artifacts' subcommand walks a directory of build artifacts and prints one markdown table row per file with its OS, architecture and build type (taken from the path), size and SHA-256 prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := artifacts.Scan(args[0])
		if err != nil {
			return err
		}
		return artifacts.WriteMarkdown(cmd.OutOrStdout(), list)
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.AddCommand(summarizeArtifactsCmd)
}
