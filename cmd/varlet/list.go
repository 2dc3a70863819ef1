package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variable keys",
	Long: `List every key in the metastore in lexical order.

Example:
  varlet list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	keys, err := st.List()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	logger.Debug("listed variables", "count", len(keys))

	if humanOutput {
		for _, key := range keys {
			fmt.Println(key)
		}
	} else {
		if keys == nil {
			keys = []string{}
		}
		outputJSON(keys)
	}
	return nil
}
