package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varlet/varlet/internal/variable"
)

var importDisposition string

// ImportResult is the response for the import command.
type ImportResult struct {
	Added       int      `json:"added"`
	Overwritten int      `json:"overwritten"`
	Skipped     int      `json:"skipped"`
	Rejected    []string `json:"rejected,omitempty"`
}

func init() {
	importCmd.Flags().StringVar(&importDisposition, "conflict-disposition", "overwrite",
		"What to do with keys that already exist (overwrite, ignore, restrict)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import variables from a JSON file",
	Long: `Import variables from a JSON file: one object mapping keys to values
of any JSON type.

Keys are processed in document order. Keys absent from the store are always
written. Keys that already exist follow --conflict-disposition:

  overwrite  replace the stored value (default)
  ignore     keep the stored value, skip the incoming one
  restrict   keep the stored value and fail, listing every rejected key;
             non-conflicting keys are still written

Examples:
  varlet import variables.json
  varlet import variables.json --conflict-disposition restrict`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	policy, err := variable.ParsePolicy(importDisposition)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitError, "reading import file: %v", err)
	}

	batch, err := variable.ParseBatch(data)
	if err != nil {
		exitWithError(ExitDataError, "%s: %v", path, err)
	}
	logger.Debug("parsed import file", "path", path, "pairs", len(batch), "policy", policy)

	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	sum, err := variable.Merge(st, batch, policy)
	if err != nil {
		var conflict *variable.ConflictError
		if errors.As(err, &conflict) {
			// Non-conflicting keys are committed; report what happened
			// before failing.
			reportImport(sum)
			exitWithError(ExitDataError, "%v", conflict)
		}
		exitWithError(ExitError, "%v", err)
	}

	reportImport(sum)
	return nil
}

func reportImport(sum variable.Summary) {
	if humanOutput {
		fmt.Printf("Imported variables:\n")
		fmt.Printf("  Added:       %d\n", sum.Added)
		fmt.Printf("  Overwritten: %d\n", sum.Overwritten)
		fmt.Printf("  Skipped:     %d\n", sum.Skipped)
		if len(sum.Rejected) > 0 {
			fmt.Printf("  Rejected:    %d\n", len(sum.Rejected))
			for _, key := range sum.Rejected {
				fmt.Printf("    - %s\n", key)
			}
		}
	} else {
		outputJSON(ImportResult{
			Added:       sum.Added,
			Overwritten: sum.Overwritten,
			Skipped:     sum.Skipped,
			Rejected:    sum.Rejected,
		})
	}
}
