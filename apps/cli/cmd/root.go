package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "colrun",
	Short: "Run HTTP request collections from the command line.",
	Long: `colrun executes a collection of HTTP requests against an environment:
it resolves {{variable}} templates, dispatches each request under a hard
deadline, evaluates the request's JavaScript assertions, and reports the
aggregate as console text, JSON, JUnit XML or TAP.`,
	SilenceUsage: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
