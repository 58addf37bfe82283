package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colrun/colrun/packages/history"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history <database>",
	Short: "List runs recorded with --save-history",
	Long: `Show the summaries stored in a run history database.

Examples:
  colrun history runs.db
  colrun history runs.db --limit 50`,
	Args: cobra.ExactArgs(1),
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of runs to show")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(historyLimitFlag)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %s  passed=%d failed=%d errors=%d skipped=%d  %dms\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Collection,
			r.Passed, r.Failures, r.Errors, r.Skipped, r.DurationMs)
	}
	return nil
}
