// =============================================================================
// Sales Analytics System - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sales-analytics)
//   ├── processCmd (sales-analytics process)
//   └── versionCmd (sales-analytics version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "sales-analytics",

	Short: "Sales Analytics - Process pipe-delimited sales data into reports",

	Long: `Sales Analytics is a CLI tool that processes pipe-delimited sales
transaction files into a formatted analytics report, an enriched data file,
and an XLSX workbook.

Key Features:
  - Tolerant parsing: malformed lines are dropped, not fatal
  - Validation and optional region / amount-range filtering
  - Revenue, region, product, customer, and daily-trend aggregation
  - Product enrichment from an external catalog service (cached and throttled)
  - Automatic archival of processed input files

Example Usage:
  sales-analytics process                          # Process the configured input file
  sales-analytics process --input ./data/q1.txt    # Process a specific file
  sales-analytics process --region North --top 10  # Filter and widen the rankings`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
