// Package main provides the varlet CLI entry point.
package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/varlet/varlet/internal/config"
	"github.com/varlet/varlet/internal/crypt"
	"github.com/varlet/varlet/internal/secrets"
	"github.com/varlet/varlet/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug-level diagnostics on stderr
var verbose bool

// logger carries debug diagnostics; normal command output never goes
// through it. PersistentPreRun swaps in a configured instance.
var logger = charmlog.New(os.Stderr)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "varlet",
	Short: "Manage named variables in a persistent key-value store",
	Long: `varlet manages named variables backed by a local metastore.

Values of any JSON type round-trip through the store: plain strings are
kept verbatim, structured values are stored as canonical JSON text.
Lookups consult read-only sources first (VARLET_VAR_* environment
variables, configured variable files), then the metastore.

All commands output JSON by default; use --human for plain output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := charmlog.WarnLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenStore opens the metastore, exits on error.
// The caller is responsible for calling Close() on the returned store.
func mustOpenStore(cfg *config.Config) *store.SQLite {
	var box *crypt.Box
	if cfg.SecretKey != "" {
		box = crypt.New(cfg.SecretKey)
	}

	path := cfg.ResolveStorePath()
	logger.Debug("opening metastore", "path", path, "encrypted", box != nil)

	st, err := store.OpenSQLite(path, box)
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	return st
}

// buildChain assembles the lookup chain used by get: environment variables
// first, then configured variable files in order, then the metastore.
func buildChain(cfg *config.Config, st store.Store) *secrets.Chain {
	backends := []secrets.Backend{&secrets.Env{}}
	for _, path := range cfg.VariableFiles {
		lf, err := secrets.OpenLocalFile(path)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		logger.Debug("loaded variable file", "path", lf.Path(), "variables", lf.Len())
		backends = append(backends, lf)
	}
	backends = append(backends, secrets.StoreBackend(st))
	return secrets.NewChain(backends...)
}
