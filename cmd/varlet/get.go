package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varlet/varlet/internal/secrets"
	"github.com/varlet/varlet/internal/variable"
)

var (
	getDefault string
	getJSON    bool
)

func init() {
	getCmd.Flags().StringVar(&getDefault, "default", "", "Value returned when the variable does not exist")
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Decode the stored value as JSON")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a variable",
	Long: `Get a variable's value.

Lookups consult VARLET_VAR_* environment variables and configured variable
files before the metastore. A missing key with --default prints the default;
without it the command fails.

Examples:
  varlet get api_url
  varlet get retries --json
  varlet get missing --default fallback`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// resolveVariable looks key up across the chain and falls back to def when
// the key is absent and a default was supplied. A miss without a default is
// a NotFoundError.
func resolveVariable(b secrets.Backend, key, def string, hasDefault bool) (string, error) {
	raw, found, err := b.GetVariable(key)
	if err != nil {
		return "", err
	}
	if found {
		return raw, nil
	}
	if hasDefault {
		return def, nil
	}
	return "", &variable.NotFoundError{Key: key}
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	hasDefault := cmd.Flags().Changed("default")

	cfg := mustLoadConfig()
	st := mustOpenStore(cfg)
	defer st.Close()

	raw, err := resolveVariable(buildChain(cfg, st), key, getDefault, hasDefault)
	if err != nil {
		var notFound *variable.NotFoundError
		if errors.As(err, &notFound) {
			exitWithError(ExitNotFound, "%v", notFound)
		}
		exitWithError(ExitError, "%v", err)
	}

	if !getJSON {
		fmt.Println(raw)
		return nil
	}

	val, err := variable.Decode(key, raw, true)
	if err != nil {
		var decodeErr *variable.DecodeError
		if errors.As(err, &decodeErr) {
			exitWithError(ExitDataError, "%v", decodeErr)
		}
		exitWithError(ExitError, "%v", err)
	}

	text, err := variable.Encode(val)
	if err != nil {
		exitWithError(ExitError, "variable %q: %v", key, err)
	}
	fmt.Println(text)
	return nil
}
