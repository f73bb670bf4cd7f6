// =============================================================================
// Sales Analytics System - Pipeline Module
// =============================================================================
//
// This module contains the core processing logic. It orchestrates the entire
// run for a single input file, from reading the raw lines to writing the
// report and archiving the input.
//
// PROCESSING PIPELINE:
//   1. Read and decode the input file
//   2. Parse raw lines into transactions
//   3. Validate and filter the transactions
//   4. Fetch the product catalog and enrich the transactions
//   5. Compile the report
//   6. Write the report, enriched data file, and workbook
//   7. Archive the input file
//
// A catalog failure degrades the run instead of failing it: the pipeline
// continues with an empty catalog and every transaction is reported as
// unmatched.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ginjaninja78/sales-analytics/internal/analytics"
	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/exporter"
	"github.com/ginjaninja78/sales-analytics/internal/linesource"
	"github.com/ginjaninja78/sales-analytics/internal/report"
	"github.com/ginjaninja78/sales-analytics/internal/salesparser"
	"github.com/ginjaninja78/sales-analytics/internal/types"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
	"github.com/ginjaninja78/sales-analytics/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single input file.
type Result struct {
	// InputPath is the path to the input file that was processed.
	InputPath string

	// ReportFile is the path to the written report.
	// This is empty if processing failed or on a dry run.
	ReportFile string

	// EnrichedFile is the path to the written enriched data file.
	EnrichedFile string

	// WorkbookFile is the path to the written XLSX workbook.
	WorkbookFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about a pipeline run.
type Stats struct {
	// LinesRead is the number of non-blank data lines read from the input.
	LinesRead int

	// Parsed is the number of lines that parsed into transactions.
	Parsed int

	// Invalid is the number of parsed transactions dropped by validation.
	Invalid int

	// FilteredByRegion is the number of valid transactions dropped by the
	// region filter.
	FilteredByRegion int

	// FilteredByAmount is the number dropped by the amount filter.
	FilteredByAmount int

	// Final is the number of transactions that survived every stage.
	Final int

	// TotalRevenue is the revenue across the final transactions.
	TotalRevenue float64

	// Matched is the number of transactions enriched from the catalog.
	Matched int

	// Duration is the time taken to process the file.
	Duration time.Duration
}

// =============================================================================
// OPTIONS STRUCTURE
// =============================================================================

// Options carries per-run settings, typically derived from command-line
// flags layered over the configuration file.
type Options struct {
	// InputPath overrides the configured input file when non-empty.
	InputPath string

	// Filter is applied after validation.
	Filter validation.Filter

	// TopProducts overrides the configured top-N when positive.
	TopProducts int

	// LowQuantityThreshold overrides the configured threshold when positive.
	LowQuantityThreshold int

	// SkipEnrichment runs the pipeline with an empty catalog.
	SkipEnrichment bool

	// DryRun computes everything but writes no files and archives nothing.
	DryRun bool

	// Archive moves the input file to the archive directory after a
	// successful run.
	Archive bool
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// CatalogSource supplies the product catalog mapping used for enrichment.
type CatalogSource interface {
	ProductMapping(ctx context.Context) (map[int]types.CatalogEntry, error)
}

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Pipeline processes a single sales data file end to end.
type Pipeline struct {
	cfg     *config.Config
	opts    Options
	catalog CatalogSource
	files   *utils.FileManager
	logger  Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Pipeline instance.
//
// PARAMETERS:
//   - cfg: The application configuration.
//   - opts: Per-run options layered over the configuration.
//   - catalog: The catalog source used for enrichment. May be nil, in which
//     case enrichment is skipped.
//
// RETURNS:
//   - A new Pipeline instance.
func New(cfg *config.Config, opts Options, catalog CatalogSource) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		opts:    opts,
		catalog: catalog,
		files:   utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir),
		logger:  NewLogger(cfg.LogLevel),
	}
}

// SetLogger replaces the pipeline's logger.
func (p *Pipeline) SetLogger(logger Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the processing pipeline for the input file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (p *Pipeline) Run(ctx context.Context) Result {
	startTime := time.Now()

	inputPath := p.cfg.InputFile
	if p.opts.InputPath != "" {
		inputPath = p.opts.InputPath
	}

	result := Result{
		InputPath: inputPath,
		Success:   false,
	}

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	p.logger.Info("Processing file: %s", inputPath)

	lines, err := linesource.ReadLines(inputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	result.Stats.LinesRead = len(lines)
	p.logger.Debug("Read %d data lines", len(lines))

	// =========================================================================
	// STEP 2: PARSE
	// =========================================================================
	// Malformed lines are dropped silently; the counts tell the story.

	transactions := salesparser.ParseLines(lines)
	result.Stats.Parsed = len(transactions)
	p.logger.Debug("Parsed %d transactions (%d lines dropped)",
		len(transactions), len(lines)-len(transactions))

	// =========================================================================
	// STEP 3: VALIDATE AND FILTER
	// =========================================================================

	valid, invalid, summary := validation.ValidateAndFilter(transactions, p.opts.Filter)
	result.Stats.Invalid = invalid
	result.Stats.FilteredByRegion = summary.FilteredByRegion
	result.Stats.FilteredByAmount = summary.FilteredByAmount
	result.Stats.Final = summary.FinalCount
	result.Stats.TotalRevenue = analytics.TotalRevenue(valid)

	p.logger.Debug("Validation kept %d of %d (invalid: %d, region: %d, amount: %d)",
		summary.FinalCount, summary.TotalInput, invalid,
		summary.FilteredByRegion, summary.FilteredByAmount)

	// =========================================================================
	// STEP 4: ENRICH
	// =========================================================================
	// The catalog is best-effort. On failure the run continues with an
	// empty mapping and the report flags every product as not enriched.

	mapping := p.fetchCatalog(ctx)
	enriched := enrichment.Merge(valid, mapping)
	result.Stats.Matched = enrichment.MatchCount(enriched)

	p.logger.Debug("Enriched %d of %d transactions", result.Stats.Matched, len(valid))

	// =========================================================================
	// STEP 5: COMPILE REPORT
	// =========================================================================

	topN := p.cfg.Analytics.TopProducts
	if p.opts.TopProducts > 0 {
		topN = p.opts.TopProducts
	}
	lowThreshold := p.cfg.Analytics.LowQuantityThreshold
	if p.opts.LowQuantityThreshold > 0 {
		lowThreshold = p.opts.LowQuantityThreshold
	}

	reportText := report.Compile(valid, enriched, report.Options{
		TopN:                 topN,
		LowQuantityThreshold: lowThreshold,
		GeneratedAt:          time.Now(),
	})

	if p.opts.DryRun {
		p.logger.Info("Dry run: skipping file writes and archival")
		result.Success = true
		result.Stats.Duration = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 6: WRITE OUTPUT FILES
	// =========================================================================

	if err := p.files.EnsureDirectories(); err != nil {
		result.Error = fmt.Errorf("failed to prepare directories: %w", err)
		return result
	}

	reportPath := p.files.OutputPath(p.cfg.ReportFileFormat)
	if err := exporter.WriteReport(reportPath, reportText); err != nil {
		result.Error = err
		return result
	}
	result.ReportFile = reportPath
	p.logger.Info("Wrote report to: %s", reportPath)

	enrichedPath := p.files.OutputPath(p.cfg.EnrichedFileFormat)
	if err := exporter.WriteEnriched(enrichedPath, enriched); err != nil {
		result.Error = err
		return result
	}
	result.EnrichedFile = enrichedPath
	p.logger.Info("Wrote enriched data to: %s", enrichedPath)

	workbookPath := p.files.OutputPath(p.cfg.WorkbookFileFormat)
	if err := exporter.WriteWorkbook(workbookPath, valid, enriched); err != nil {
		result.Error = err
		return result
	}
	result.WorkbookFile = workbookPath
	p.logger.Info("Wrote workbook to: %s", workbookPath)

	// =========================================================================
	// STEP 7: ARCHIVE INPUT
	// =========================================================================
	// Archival failure is logged but does not fail the run.

	if p.opts.Archive {
		archivePath, err := p.files.ArchiveInput(inputPath)
		if err != nil {
			p.logger.Warn("Failed to archive input file: %v", err)
		} else {
			p.logger.Info("Archived input to: %s", archivePath)
		}
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.Duration = time.Since(startTime)

	return result
}

// fetchCatalog returns the product mapping, or an empty map when enrichment
// is skipped, no source is configured, or the fetch fails.
func (p *Pipeline) fetchCatalog(ctx context.Context) map[int]types.CatalogEntry {
	if p.opts.SkipEnrichment || p.catalog == nil {
		p.logger.Debug("Enrichment skipped")
		return map[int]types.CatalogEntry{}
	}

	mapping, err := p.catalog.ProductMapping(ctx)
	if err != nil {
		p.logger.Warn("Catalog fetch failed, continuing without enrichment: %v", err)
		return map[int]types.CatalogEntry{}
	}
	return mapping
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// logLevel orders the supported verbosity levels.
var logLevels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// defaultLogger is a simple leveled logger that prints to stderr.
type defaultLogger struct {
	level int
}

// NewLogger creates a leveled logger writing to stderr. Unknown levels
// fall back to "info".
func NewLogger(level string) Logger {
	lv, ok := logLevels[level]
	if !ok {
		lv = logLevels["info"]
	}
	return &defaultLogger{level: lv}
}

func (l *defaultLogger) log(level int, prefix, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	fmt.Fprintf(os.Stderr, prefix+msg+"\n", args...)
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	l.log(logLevels["debug"], "[DEBUG] ", msg, args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	l.log(logLevels["info"], "[INFO] ", msg, args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	l.log(logLevels["warn"], "[WARN] ", msg, args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	l.log(logLevels["error"], "[ERROR] ", msg, args...)
}
