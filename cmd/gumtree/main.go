// Package main provides the gumtree CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gumtree/pkg/version"
)

// Exit codes, per SPEC_FULL.md §7: malformed input and internal/assertion
// failures get distinct non-zero codes from each other. Every other failure,
// usage errors included, exits with the internal-error code.
const (
	exitOK             = 0
	exitMalformedInput = 2
	exitInternalError  = 3
)

var (
	cfgFile     string  //nolint:gochecknoglobals // CLI flag variable
	logLevel    string  //nolint:gochecknoglobals // CLI flag variable
	logFormat   string  //nolint:gochecknoglobals // CLI flag variable
	metricsAddr string  //nolint:gochecknoglobals // CLI flag variable
	flagMinH    int     //nolint:gochecknoglobals // CLI flag variable
	flagMinSim  float64 //nolint:gochecknoglobals // CLI flag variable
	flagMaxSize int     //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gumtree",
		Short: "Structural tree diff for parsed syntax trees",
		Long:  `gumtree computes a structural match and edit script between two parsed syntax trees.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gumtree.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (profile action only)")
	rootCmd.PersistentFlags().IntVar(&flagMinH, "min-height", -1, "minimum subtree height for top-down matching")
	rootCmd.PersistentFlags().Float64Var(&flagMinSim, "min-similarity", -1, "minimum dice similarity for bottom-up matching")
	rootCmd.PersistentFlags().IntVar(&flagMaxSize, "max-size", -1, "maximum subtree size for Zhang-Shasha matching")

	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gumtree %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
