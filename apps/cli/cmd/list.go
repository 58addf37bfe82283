package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colrun/colrun/packages/collection"
)

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List the folders and requests of a collection",
	Long: `Print the folder/request tree of a collection in the order the
runner would execute it.

Examples:
  colrun list api.json`,
	Args: cobra.ExactArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	col, err := collection.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", col.Name)
	printLevel(cmd, col.Requests, col.Folders, 1)
	return nil
}

func printLevel(cmd *cobra.Command, requests []collection.Request, folders []collection.Folder, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, req := range requests {
		fmt.Fprintf(cmd.OutOrStdout(), "%s- %s %s\n", indent, req.Method, req.Name)
	}
	for _, folder := range folders {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s/\n", indent, folder.Name)
		printLevel(cmd, folder.Requests, folder.Folders, depth+1)
	}
}
