// =============================================================================
// Sales Analytics System - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full analytics
// pipeline for a single sales data file.
//
// COMMAND USAGE:
//   sales-analytics process [flags]
//
// FLAGS:
//   --input            : Path to the input file (overrides the configuration)
//   --region           : Keep only transactions from this region
//   --min-amount       : Keep only transactions with amount >= this value
//   --max-amount       : Keep only transactions with amount <= this value
//   --top              : Number of entries in the product and customer rankings
//   --low-threshold    : Quantity below which a product is a low performer
//   --skip-enrichment  : Do not call the catalog service
//   --dry-run          : Compute everything but write no files
//   --no-archive       : Leave the input file in place after processing
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-analytics/internal/catalog"
	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/pipeline"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputPath overrides the configured input file.
var inputPath string

// regionFilter keeps only transactions from a specific region.
var regionFilter string

// minAmount and maxAmount bound the transaction amount filter. They only
// take effect when the flag is set, so zero remains a usable bound.
var minAmount float64
var maxAmount float64

// topN sets the size of the ranking tables.
var topN int

// lowThreshold sets the low-performer quantity cutoff.
var lowThreshold int

// skipEnrichment disables the catalog service call.
var skipEnrichment bool

// dryRun simulates processing without writing output files.
var dryRun bool

// noArchive leaves the input file in place after processing.
var noArchive bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a sales data file into a report, enriched data, and a workbook",
	Long: `The process command reads the pipe-delimited sales data file, validates
and optionally filters the transactions, enriches them from the product catalog
service, and writes three outputs to the output directory:

  - A formatted analytics report (text)
  - An enriched sales data file (pipe-delimited, with catalog columns)
  - An XLSX workbook with summary, region, daily trend, and enriched sheets

On successful processing the input file is moved to the archive directory
unless --no-archive or --dry-run is given. A catalog failure does not fail
the run; processing continues without enrichment.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&inputPath,
		"input",
		"",
		"Path to the input file (overrides the configuration)",
	)

	processCmd.Flags().StringVar(
		&regionFilter,
		"region",
		"",
		"Keep only transactions from this region (exact match)",
	)

	processCmd.Flags().Float64Var(
		&minAmount,
		"min-amount",
		0,
		"Keep only transactions with amount >= this value",
	)

	processCmd.Flags().Float64Var(
		&maxAmount,
		"max-amount",
		0,
		"Keep only transactions with amount <= this value",
	)

	processCmd.Flags().IntVar(
		&topN,
		"top",
		0,
		"Number of entries in the product and customer rankings (default from config)",
	)

	processCmd.Flags().IntVar(
		&lowThreshold,
		"low-threshold",
		0,
		"Quantity below which a product counts as a low performer (default from config)",
	)

	processCmd.Flags().BoolVar(
		&skipEnrichment,
		"skip-enrichment",
		false,
		"Do not call the catalog service",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Compute everything but write no files",
	)

	processCmd.Flags().BoolVar(
		&noArchive,
		"no-archive",
		false,
		"Leave the input file in place after processing",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess loads the configuration, assembles the pipeline, and runs it.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()

	fmt.Println("=== Sales Analytics ===")
	fmt.Println("Loading configuration...")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// Amount bounds only apply when the flag was actually given; a zero
	// value passed explicitly is still a valid bound.
	filter := validation.Filter{Region: regionFilter}
	if cmd.Flags().Changed("min-amount") {
		filter.MinAmount = &minAmount
	}
	if cmd.Flags().Changed("max-amount") {
		filter.MaxAmount = &maxAmount
	}

	opts := pipeline.Options{
		InputPath:            inputPath,
		Filter:               filter,
		TopProducts:          topN,
		LowQuantityThreshold: lowThreshold,
		SkipEnrichment:       skipEnrichment,
		DryRun:               dryRun,
		Archive:              !noArchive && !dryRun,
	}

	p := pipeline.New(cfg, opts, catalog.NewClient(cfg.Catalog))

	fmt.Println("Processing...")
	result := p.Run(context.Background())

	if !result.Success {
		fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.InputPath), result.Error)
		return result.Error
	}

	fmt.Printf("  ✓ %s\n", filepath.Base(result.InputPath))

	// =========================================================================
	// SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Lines read:        %d\n", result.Stats.LinesRead)
	fmt.Printf("Parsed:            %d\n", result.Stats.Parsed)
	fmt.Printf("Invalid:           %d\n", result.Stats.Invalid)
	fmt.Printf("Filtered (region): %d\n", result.Stats.FilteredByRegion)
	fmt.Printf("Filtered (amount): %d\n", result.Stats.FilteredByAmount)
	fmt.Printf("Final:             %d\n", result.Stats.Final)
	fmt.Printf("Enriched:          %d\n", result.Stats.Matched)
	fmt.Printf("Total revenue:     %.2f\n", result.Stats.TotalRevenue)
	fmt.Printf("Time elapsed:      %s\n", elapsed)

	if !dryRun {
		fmt.Println("\nOutputs:")
		fmt.Printf("  Report:   %s\n", result.ReportFile)
		fmt.Printf("  Enriched: %s\n", result.EnrichedFile)
		fmt.Printf("  Workbook: %s\n", result.WorkbookFile)
	}

	return nil
}
