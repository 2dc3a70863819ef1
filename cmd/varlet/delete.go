package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varlet/varlet/internal/variable"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a variable",
	Long: `Delete a variable from the metastore.

Example:
  varlet delete api_url`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	deleted, err := st.Delete(key)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if !deleted {
		exitWithError(ExitNotFound, "%v", &variable.NotFoundError{Key: key})
	}

	if humanOutput {
		fmt.Printf("Variable %q deleted\n", key)
	} else {
		outputJSON(StatusResponse{Status: "deleted", Key: key})
	}
	return nil
}
