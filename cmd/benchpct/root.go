// cmd/benchpct/root.go
package benchpct

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/benchpct/internal/config"
)

// rootCmd is the base Cobra command for the benchpct application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "benchpct",
	Short: "Percentile reports and charts for Google Benchmark results",
	Long: `benchpct reads the JSON written by a Google Benchmark executable, computes
per-case latency percentiles from the raw iteration records, and prints,
saves and plots them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	PersistentPreRunE: setup,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "print the resolved configuration")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
}

// setup runs before every command: it binds the executing command's flags to
// viper, reads the config file and environment, and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	config.SetDefaults(v)
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(flagKey(f.Name), f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if err := config.ReadFile(v, v.GetString("config")); err != nil {
		return err
	}
	return ConfigureLogging(v.GetString(config.KeyLogLevel))
}

// flagKey maps a flag name to its configuration key: plot-file -> plot_file.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
