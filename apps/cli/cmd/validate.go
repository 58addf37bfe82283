package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/colrun/colrun/packages/collection"
)

var validateCmd = &cobra.Command{
	Use:   "validate <collection>...",
	Short: "Validate collection files without executing them",
	Long: `Check collection files against the collection schema without
dispatching any request.

Examples:
  colrun validate api.json
  colrun validate api.json smoke.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	hasErrors := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err == nil {
			err = collection.ValidateSchema(data)
		}
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", path, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", path)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}
	return nil
}
