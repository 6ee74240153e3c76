package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the taskmgr application
var rootCmd = &cobra.Command{
	Use:   "taskmgr <input-file>",
	Short: "Replays task commands from an input file",
	Long: `taskmgr reads a command file line by line and executes each command
against an in-memory task list, printing the outcome of every command
to standard output.

Supported commands: help, print, add, list, mod, done, delete.
Blank lines are skipped and lines starting with # are comments.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReplay(cmd, args[0])
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskmgr version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error. Can also use TASKMGR_LOG_LEVEL env var. Default: info")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json. Can also use TASKMGR_LOG_FORMAT env var. Default: text")
	rootCmd.Flags().Bool("metrics-enabled", false, "Expose Prometheus metrics on a dedicated port while replaying. Can also use METRICS_ENABLED env var.")
	rootCmd.Flags().String("metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")
}
