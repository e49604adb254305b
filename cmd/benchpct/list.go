// cmd/benchpct/list.go
package benchpct

import (
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group and acts as a namespace
// for subcommands that list information (for example, commands or groups).
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing information",
	Long:  `The 'list' command groups related subcommands that list information. It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
