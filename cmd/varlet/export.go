package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varlet/varlet/internal/variable"
)

// ExportResult is the response for the export command.
type ExportResult struct {
	Path   string   `json:"path"`
	Count  int      `json:"count"`
	Errors []string `json:"errors,omitempty"`
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all variables to a JSON file",
	Long: `Export every variable to a JSON file: one object, keys sorted
lexically, 2-space indentation, values in their richest decodable form.
Two exports with no mutation in between produce identical files.

Example:
  varlet export variables.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	data, count, keyErrs, err := variable.Export(st)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		exitWithError(ExitError, "writing export file: %v", err)
	}

	errStrs := make([]string, len(keyErrs))
	for i, e := range keyErrs {
		errStrs[i] = e.Error()
	}

	if humanOutput {
		fmt.Printf("Exported %d variables to %s\n", count, path)
		for _, e := range errStrs {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
	} else {
		outputJSON(ExportResult{Path: path, Count: count, Errors: errStrs})
	}
	return nil
}
