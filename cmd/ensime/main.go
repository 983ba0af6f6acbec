package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/myrjola/ensime-server/internal/config"
)

var (
	flagConfig  string
	flagFormat  string
	flagVerbose int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ensime",
	Short:         "Semantic queries over a working set of Go sources",
	Long:          "Ensime answers point-based queries (type, symbol, completions, documentation, definitions) against a working set of Go source files, recompiling the whole set per query so cross-file references stay consistent.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		commonlog.Configure(flagVerbose, nil)
		return validateFormat(flagFormat)
	},
	// No Run; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "ensime.toml", "session configuration file")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(indexCmd)
}

// loadConfig reads the --config file, falling back to defaults when absent.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// parseOffsetArg parses a positional argument as a byte offset.
func parseOffsetArg(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid offset %q: must be a non-negative integer", value)
	}
	return n, nil
}
