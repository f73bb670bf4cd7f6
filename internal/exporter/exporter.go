// =============================================================================
// Sales Analytics System - Exporter Module
// =============================================================================
//
// This module is the sink side of the pipeline. It serializes the computed
// structures to disk:
//   - The enriched data file: pipe-delimited rows with a 12-column header,
//     empty strings standing in for null API fields
//   - The report text file
//   - An XLSX workbook with Summary, Regions, Daily Trend, and Enriched Data
//     sheets for people who want the numbers in a spreadsheet
//
// The exporter only serializes; every number it writes was computed upstream.
//
// =============================================================================

package exporter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-analytics/internal/analytics"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// enrichedHeader is the fixed column order of the enriched data file.
var enrichedHeader = []string{
	"TransactionID",
	"Date",
	"ProductID",
	"ProductName",
	"Quantity",
	"UnitPrice",
	"CustomerID",
	"Region",
	"API_Category",
	"API_Brand",
	"API_Rating",
	"API_Match",
}

// =============================================================================
// ENRICHED DATA FILE
// =============================================================================

// WriteEnriched writes the enriched transactions as pipe-delimited rows.
func WriteEnriched(path string, enriched []types.EnrichedTransaction) error {
	var b strings.Builder
	b.WriteString(strings.Join(enrichedHeader, "|"))
	b.WriteString("\n")

	for _, e := range enriched {
		b.WriteString(strings.Join(enrichedRow(e), "|"))
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write enriched data file: %w", err)
	}
	return nil
}

// enrichedRow serializes one enriched transaction in header column order.
// Nil API fields become empty strings.
func enrichedRow(e types.EnrichedTransaction) []string {
	category, brand, rating := "", "", ""
	if e.APICategory != nil {
		category = *e.APICategory
	}
	if e.APIBrand != nil {
		brand = *e.APIBrand
	}
	if e.APIRating != nil {
		rating = formatFloat(*e.APIRating)
	}

	return []string{
		e.TransactionID,
		e.Date,
		e.ProductID,
		e.ProductName,
		strconv.Itoa(e.Quantity),
		formatFloat(e.UnitPrice),
		e.CustomerID,
		e.Region,
		category,
		brand,
		rating,
		strconv.FormatBool(e.APIMatch),
	}
}

// formatFloat renders a float without trailing zero noise.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// =============================================================================
// REPORT FILE
// =============================================================================

// WriteReport writes the compiled report text.
func WriteReport(path, report string) error {
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// =============================================================================
// XLSX WORKBOOK
// =============================================================================

// WriteWorkbook writes the XLSX workbook export.
//
// PARAMETERS:
//   - path: The output path. The extension should be .xlsx.
//   - transactions: The valid-transaction collection.
//   - enriched: The enrichment merger output for the same collection.
//
// RETURNS:
//   - An error if any sheet cannot be built or the file cannot be saved.
func WriteWorkbook(path string, transactions []types.Transaction, enriched []types.EnrichedTransaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, transactions, enriched); err != nil {
		return err
	}
	if err := writeRegionSheet(f, transactions); err != nil {
		return err
	}
	if err := writeDailySheet(f, transactions); err != nil {
		return err
	}
	if err := writeEnrichedSheet(f, enriched); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, transactions []types.Transaction, enriched []types.EnrichedTransaction) error {
	const sheet = "Summary"
	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	totalRevenue := analytics.TotalRevenue(transactions)
	avg := 0.0
	if len(transactions) > 0 {
		avg = totalRevenue / float64(len(transactions))
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Revenue", totalRevenue},
		{"Total Transactions", len(transactions)},
		{"Average Order Value", avg},
		{"Enriched Transactions", enrichment.MatchCount(enriched)},
	}
	return writeRows(f, sheet, rows)
}

func writeRegionSheet(f *excelize.File, transactions []types.Transaction) error {
	const sheet = "Regions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Region", "Total Sales", "Transactions", "% of Total"}}
	for _, s := range analytics.RegionWiseSales(transactions) {
		rows = append(rows, []interface{}{s.Region, s.TotalSales, s.TransactionCount, s.Percentage})
	}
	return writeRows(f, sheet, rows)
}

func writeDailySheet(f *excelize.File, transactions []types.Transaction) error {
	const sheet = "Daily Trend"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Date", "Revenue", "Transactions", "Unique Customers"}}
	for _, d := range analytics.DailySalesTrend(transactions) {
		rows = append(rows, []interface{}{d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers})
	}
	return writeRows(f, sheet, rows)
}

func writeEnrichedSheet(f *excelize.File, enriched []types.EnrichedTransaction) error {
	const sheet = "Enriched Data"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := make([][]interface{}, 0, len(enriched)+1)
	header := make([]interface{}, len(enrichedHeader))
	for i, h := range enrichedHeader {
		header[i] = h
	}
	rows = append(rows, header)

	for _, e := range enriched {
		cells := enrichedRow(e)
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

// writeRows writes a rectangular block of rows starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell (%d,%d): %w", c+1, r+1, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
