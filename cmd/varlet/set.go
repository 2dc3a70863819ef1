package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varlet/varlet/internal/variable"
)

var setJSON bool

func init() {
	setCmd.Flags().BoolVar(&setJSON, "json", false, "Parse the value as JSON before storing")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a variable",
	Long: `Set a variable, replacing any existing value entirely.

The value is stored as given. With --json the value is parsed as JSON and
stored in canonical form (sorted keys, 2-space indent), so a later
'get --json' returns the typed value.

Examples:
  varlet set api_url https://example.com
  varlet set retries 3 --json
  varlet set limits '{"cpu": 2, "mem": 512}' --json`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	text := raw
	if setJSON {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			exitWithError(ExitDataError, "%v", &variable.DecodeError{Key: key, Err: err})
		}
		encoded, err := variable.Encode(v)
		if err != nil {
			exitWithError(ExitError, "variable %q: %v", key, err)
		}
		text = encoded
	}

	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	if err := st.Set(key, text); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Variable %q set\n", key)
	} else {
		outputJSON(StatusResponse{Status: "set", Key: key})
	}
	return nil
}
