// =============================================================================
// Sales Analytics System - Report Compiler
// =============================================================================
//
// This module composes the aggregation outputs and the enrichment results
// into the final textual report. Layout, top to bottom:
//   - Banner with generation time and record count
//   - Overall summary (revenue, counts, average order value, date range)
//   - Region-wise performance table
//   - Top products by revenue (deliberately a different ranking from the
//     aggregation engine's quantity-ranked top sellers)
//   - Top customers by spend
//   - Full chronological daily trend
//   - Peak sales day and low performing products
//   - Enrichment summary with the products that never matched the catalog
//
// The compiler never raises on an empty transaction collection; the date
// range degrades to "N/A" and every table simply comes out empty.
//
// =============================================================================

package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ginjaninja78/sales-analytics/internal/analytics"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

const (
	bannerRule  = "========================================"
	sectionRule = "----------------------------------------"
)

// Options controls report compilation.
type Options struct {
	// TopN bounds the product and customer tables. Values <= 0 fall back
	// to 5.
	TopN int

	// LowQuantityThreshold marks products with summed quantity strictly
	// below it as low performers. Values <= 0 fall back to 10.
	LowQuantityThreshold int

	// GeneratedAt is the timestamp stamped into the banner. The zero value
	// means time.Now(); tests pin it for stable output.
	GeneratedAt time.Time
}

// Compile builds the textual sales report.
//
// PARAMETERS:
//   - transactions: The valid-transaction collection.
//   - enriched: The enrichment merger output for the same collection.
//   - opts: Compilation options.
//
// RETURNS:
//   - The complete report as a string, ready for the sink.
func Compile(transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) string {
	topN := opts.TopN
	if topN <= 0 {
		topN = 5
	}
	lowThreshold := opts.LowQuantityThreshold
	if lowThreshold <= 0 {
		lowThreshold = 10
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	var b strings.Builder

	writeBanner(&b, transactions, generatedAt)
	writeOverallSummary(&b, transactions)
	writeRegionPerformance(&b, transactions)
	writeTopProducts(&b, transactions, topN)
	writeTopCustomers(&b, transactions, topN)
	writeDailyTrend(&b, transactions)
	writePeakDay(&b, transactions)
	writeLowPerformers(&b, transactions, lowThreshold)
	writeEnrichmentSummary(&b, enriched)

	return b.String()
}

// =============================================================================
// SECTIONS
// =============================================================================

func writeBanner(b *strings.Builder, transactions []types.Transaction, generatedAt time.Time) {
	fmt.Fprintf(b, "%s\n", bannerRule)
	fmt.Fprintf(b, "SALES ANALYTICS REPORT\n")
	fmt.Fprintf(b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Records Processed: %d\n", len(transactions))
	fmt.Fprintf(b, "%s\n\n", bannerRule)
}

func writeOverallSummary(b *strings.Builder, transactions []types.Transaction) {
	totalRevenue := analytics.TotalRevenue(transactions)

	avgOrderValue := 0.0
	if len(transactions) > 0 {
		avgOrderValue = totalRevenue / float64(len(transactions))
	}

	fmt.Fprintf(b, "OVERALL SUMMARY\n%s\n", sectionRule)
	fmt.Fprintf(b, "Total Revenue: ₹%s\n", money2(totalRevenue))
	fmt.Fprintf(b, "Total Transactions: %d\n", len(transactions))
	fmt.Fprintf(b, "Average Order Value: ₹%s\n", money2(avgOrderValue))
	fmt.Fprintf(b, "Date Range: %s\n\n", dateRange(transactions))
}

func writeRegionPerformance(b *strings.Builder, transactions []types.Transaction) {
	fmt.Fprintf(b, "REGION-WISE PERFORMANCE\n%s\n", sectionRule)
	fmt.Fprintf(b, "Region | Sales | %% of Total | Transactions\n")
	for _, s := range analytics.RegionWiseSales(transactions) {
		fmt.Fprintf(b, "%s | ₹%s | %.2f%% | %d\n", s.Region, money0(s.TotalSales), s.Percentage, s.TransactionCount)
	}
	b.WriteString("\n")
}

func writeTopProducts(b *strings.Builder, transactions []types.Transaction, topN int) {
	// The report ranks products by revenue. This is intentionally a
	// different ordering from the aggregation engine's quantity-ranked
	// top sellers; the two rankings are not to be unified.
	stats := analytics.ProductBreakdown(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue > stats[j].Revenue
	})
	if len(stats) > topN {
		stats = stats[:topN]
	}

	fmt.Fprintf(b, "TOP %d PRODUCTS\n%s\n", topN, sectionRule)
	for i, s := range stats {
		fmt.Fprintf(b, "%d. %s | Qty: %d | Revenue: ₹%s\n", i+1, s.Product, s.Quantity, money0(s.Revenue))
	}
	b.WriteString("\n")
}

func writeTopCustomers(b *strings.Builder, transactions []types.Transaction, topN int) {
	stats := analytics.CustomerAnalysis(transactions)
	if len(stats) > topN {
		stats = stats[:topN]
	}

	fmt.Fprintf(b, "TOP %d CUSTOMERS\n%s\n", topN, sectionRule)
	for i, s := range stats {
		fmt.Fprintf(b, "%d. %s | Spent: ₹%s | Orders: %d\n", i+1, s.CustomerID, money0(s.TotalSpent), s.Orders)
	}
	b.WriteString("\n")
}

func writeDailyTrend(b *strings.Builder, transactions []types.Transaction) {
	fmt.Fprintf(b, "DAILY SALES TREND\n%s\n", sectionRule)
	for _, d := range analytics.DailySalesTrend(transactions) {
		fmt.Fprintf(b, "%s | Revenue: ₹%s | Transactions: %d | Customers: %d\n",
			d.Date, money0(d.Revenue), d.TransactionCount, d.UniqueCustomers)
	}
	b.WriteString("\n")
}

func writePeakDay(b *strings.Builder, transactions []types.Transaction) {
	fmt.Fprintf(b, "PEAK SALES DAY\n%s\n", sectionRule)
	if peak, ok := analytics.PeakSalesDay(transactions); ok {
		fmt.Fprintf(b, "%s | Revenue: ₹%s | Transactions: %d\n", peak.Date, money0(peak.Revenue), peak.TransactionCount)
	} else {
		fmt.Fprintf(b, "N/A\n")
	}
	b.WriteString("\n")
}

func writeLowPerformers(b *strings.Builder, transactions []types.Transaction, threshold int) {
	fmt.Fprintf(b, "LOW PERFORMING PRODUCTS (Quantity < %d)\n%s\n", threshold, sectionRule)
	for _, s := range analytics.LowPerformingProducts(transactions, threshold) {
		fmt.Fprintf(b, "%s | Qty: %d | Revenue: ₹%s\n", s.Product, s.Quantity, money0(s.Revenue))
	}
	b.WriteString("\n")
}

func writeEnrichmentSummary(b *strings.Builder, enriched []types.EnrichedTransaction) {
	matched := enrichment.MatchCount(enriched)

	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}

	fmt.Fprintf(b, "API ENRICHMENT SUMMARY\n%s\n", sectionRule)
	fmt.Fprintf(b, "Total Products Enriched: %d\n", matched)
	fmt.Fprintf(b, "Success Rate: %.2f%%\n", successRate)

	failed := unmatchedProducts(enriched)
	if len(failed) > 0 {
		fmt.Fprintf(b, "Products Not Enriched:\n")
		for _, p := range failed {
			fmt.Fprintf(b, "- %s\n", p)
		}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// dateRange returns "min to max" over the transaction dates, or "N/A" for an
// empty collection. The dates are zero-padded YYYY-MM-DD strings, so string
// comparison is calendar comparison here.
func dateRange(transactions []types.Transaction) string {
	if len(transactions) == 0 {
		return "N/A"
	}

	minDate, maxDate := transactions[0].Date, transactions[0].Date
	for _, txn := range transactions[1:] {
		if txn.Date < minDate {
			minDate = txn.Date
		}
		if txn.Date > maxDate {
			maxDate = txn.Date
		}
	}

	return fmt.Sprintf("%s to %s", minDate, maxDate)
}

// unmatchedProducts returns the sorted distinct product names that never
// matched a catalog entry.
func unmatchedProducts(enriched []types.EnrichedTransaction) []string {
	seen := make(map[string]struct{})
	var products []string
	for _, e := range enriched {
		if e.APIMatch {
			continue
		}
		if _, ok := seen[e.ProductName]; ok {
			continue
		}
		seen[e.ProductName] = struct{}{}
		products = append(products, e.ProductName)
	}
	sort.Strings(products)
	return products
}

// money2 formats an amount with thousands separators and two decimals.
func money2(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// money0 formats an amount with thousands separators and no decimals.
func money0(v float64) string {
	return humanize.FormatFloat("#,###.", v)
}
