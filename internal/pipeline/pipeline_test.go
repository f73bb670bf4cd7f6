package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/types"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
)

const sampleInput = `TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
T001|2024-01-15|P101|Laptop|2|50.00|C001|North
T002|2024-01-16|P102|Mouse|3|10.00|C002|South
BADLINE
T003|2024-01-17|P103|Keyboard|0|20.00|C003|East
`

type stubCatalog struct {
	mapping map[int]types.CatalogEntry
	err     error
}

func (s *stubCatalog) ProductMapping(ctx context.Context) (map[int]types.CatalogEntry, error) {
	return s.mapping, s.err
}

func testConfig(t *testing.T, inputPath string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("config.Load returned error: %v", err)
	}
	cfg.InputFile = inputPath
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.ArchiveDir = filepath.Join(dir, "archive")
	cfg.ReportFileFormat = "report.txt"
	cfg.EnrichedFileFormat = "enriched.txt"
	cfg.WorkbookFileFormat = "report.xlsx"
	cfg.LogLevel = "error"
	return cfg
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	input := writeInput(t, sampleInput)
	cfg := testConfig(t, input)

	catalog := &stubCatalog{mapping: map[int]types.CatalogEntry{
		101: {Title: "Laptop", Category: "electronics", Brand: "Acme", Rating: 4.5},
	}}

	p := New(cfg, Options{}, catalog)
	result := p.Run(context.Background())

	if !result.Success {
		t.Fatalf("run failed: %v", result.Error)
	}
	if result.Stats.LinesRead != 4 {
		t.Errorf("LinesRead = %d, want 4", result.Stats.LinesRead)
	}
	if result.Stats.Parsed != 3 {
		t.Errorf("Parsed = %d, want 3 (BADLINE dropped)", result.Stats.Parsed)
	}
	if result.Stats.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1 (zero quantity)", result.Stats.Invalid)
	}
	if result.Stats.Final != 2 {
		t.Errorf("Final = %d, want 2", result.Stats.Final)
	}
	if result.Stats.TotalRevenue != 130.0 {
		t.Errorf("TotalRevenue = %v, want 130.0", result.Stats.TotalRevenue)
	}
	if result.Stats.Matched != 1 {
		t.Errorf("Matched = %d, want 1", result.Stats.Matched)
	}

	for _, path := range []string{result.ReportFile, result.EnrichedFile, result.WorkbookFile} {
		if path == "" {
			t.Fatal("expected all output paths to be set")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	}

	data, err := os.ReadFile(result.ReportFile)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "SALES ANALYTICS REPORT") {
		t.Error("report file does not contain the banner")
	}
}

func TestRunDryRun(t *testing.T) {
	input := writeInput(t, sampleInput)
	cfg := testConfig(t, input)

	p := New(cfg, Options{DryRun: true}, nil)
	result := p.Run(context.Background())

	if !result.Success {
		t.Fatalf("dry run failed: %v", result.Error)
	}
	if result.ReportFile != "" || result.EnrichedFile != "" || result.WorkbookFile != "" {
		t.Error("dry run should not produce output files")
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("dry run should not create the output directory")
	}
	if result.Stats.Final != 2 {
		t.Errorf("Final = %d, want 2", result.Stats.Final)
	}
}

func TestRunCatalogFailureDegrades(t *testing.T) {
	input := writeInput(t, sampleInput)
	cfg := testConfig(t, input)

	catalog := &stubCatalog{err: errors.New("service unavailable")}

	p := New(cfg, Options{}, catalog)
	result := p.Run(context.Background())

	if !result.Success {
		t.Fatalf("run should succeed despite catalog failure, got: %v", result.Error)
	}
	if result.Stats.Matched != 0 {
		t.Errorf("Matched = %d, want 0", result.Stats.Matched)
	}
}

func TestRunRegionFilter(t *testing.T) {
	input := writeInput(t, sampleInput)
	cfg := testConfig(t, input)

	p := New(cfg, Options{Filter: validation.Filter{Region: "North"}}, nil)
	result := p.Run(context.Background())

	if !result.Success {
		t.Fatalf("run failed: %v", result.Error)
	}
	if result.Stats.FilteredByRegion != 1 {
		t.Errorf("FilteredByRegion = %d, want 1", result.Stats.FilteredByRegion)
	}
	if result.Stats.Final != 1 {
		t.Errorf("Final = %d, want 1", result.Stats.Final)
	}
}

func TestRunArchivesInput(t *testing.T) {
	input := writeInput(t, sampleInput)
	cfg := testConfig(t, input)

	p := New(cfg, Options{Archive: true}, nil)
	result := p.Run(context.Background())

	if !result.Success {
		t.Fatalf("run failed: %v", result.Error)
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Error("input file should have been moved to the archive")
	}
	archived := filepath.Join(cfg.ArchiveDir, filepath.Base(input))
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archived file missing: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.txt"))

	p := New(cfg, Options{}, nil)
	result := p.Run(context.Background())

	if result.Success {
		t.Fatal("expected failure for missing input file")
	}
	if result.Error == nil {
		t.Fatal("expected a non-nil error")
	}
}

func TestRunEmptyInput(t *testing.T) {
	input := writeInput(t, "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n")
	cfg := testConfig(t, input)

	p := New(cfg, Options{}, nil)
	result := p.Run(context.Background())

	if !result.Success {
		t.Fatalf("empty input should still succeed, got: %v", result.Error)
	}
	if result.Stats.Final != 0 {
		t.Errorf("Final = %d, want 0", result.Stats.Final)
	}
}
