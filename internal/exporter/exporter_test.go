package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func sampleEnriched() []types.EnrichedTransaction {
	return []types.EnrichedTransaction{
		{
			Transaction: types.Transaction{
				TransactionID: "T001",
				Date:          "2024-01-15",
				ProductID:     "P101",
				ProductName:   "Laptop",
				Quantity:      2,
				UnitPrice:     50.0,
				CustomerID:    "C001",
				Region:        "North",
			},
			APICategory: strPtr("electronics"),
			APIBrand:    strPtr("Acme"),
			APIRating:   floatPtr(4.5),
			APIMatch:    true,
		},
		{
			Transaction: types.Transaction{
				TransactionID: "T002",
				Date:          "2024-01-16",
				ProductID:     "PX",
				ProductName:   "Widget",
				Quantity:      3,
				UnitPrice:     10.0,
				CustomerID:    "C002",
				Region:        "South",
			},
		},
	}
}

func TestWriteEnriched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched.txt")
	if err := WriteEnriched(path, sampleEnriched()); err != nil {
		t.Fatalf("WriteEnriched returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}

	wantHeader := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if lines[1] != "T001|2024-01-15|P101|Laptop|2|50|C001|North|electronics|Acme|4.5|true" {
		t.Errorf("matched row = %q", lines[1])
	}
	if lines[2] != "T002|2024-01-16|PX|Widget|3|10|C002|South||||false" {
		t.Errorf("unmatched row = %q", lines[2])
	}
}

func TestWriteEnrichedEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched.txt")
	if err := WriteEnriched(path, nil); err != nil {
		t.Fatalf("WriteEnriched returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("expected only the header line, got %d lines", len(lines))
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := WriteReport(path, "SALES ANALYTICS REPORT\n"); err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "SALES ANALYTICS REPORT\n" {
		t.Errorf("report content = %q", string(data))
	}
}

func TestWriteWorkbook(t *testing.T) {
	enriched := sampleEnriched()
	transactions := []types.Transaction{enriched[0].Transaction, enriched[1].Transaction}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(path, transactions, enriched); err != nil {
		t.Fatalf("WriteWorkbook returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	wantSheets := []string{"Summary", "Regions", "Daily Trend", "Enriched Data"}
	got := f.GetSheetList()
	for _, want := range wantSheets {
		found := false
		for _, name := range got {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("workbook is missing sheet %q (have %v)", want, got)
		}
	}

	cell, err := f.GetCellValue("Summary", "B2")
	if err != nil {
		t.Fatalf("failed to read Summary!B2: %v", err)
	}
	if cell != "130" {
		t.Errorf("Summary!B2 (total revenue) = %q, want %q", cell, "130")
	}

	region, err := f.GetCellValue("Regions", "A2")
	if err != nil {
		t.Fatalf("failed to read Regions!A2: %v", err)
	}
	if region != "North" {
		t.Errorf("Regions!A2 = %q, want %q", region, "North")
	}
}
