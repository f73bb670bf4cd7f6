package analytics

import (
	"math"
	"testing"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

func txn(id, date, product string, qty int, price float64, customer, region string) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     "P101",
		ProductName:   product,
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customer,
		Region:        region,
	}
}

func TestTotalRevenue(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 2, 50.0, "C001", "North"),
		txn("T002", "2024-01-02", "Gadget", 1, 30.0, "C002", "South"),
	}
	if got := TotalRevenue(txns); got != 130.0 {
		t.Errorf("TotalRevenue = %v, want 130.0", got)
	}
	if got := TotalRevenue(nil); got != 0 {
		t.Errorf("TotalRevenue(nil) = %v, want 0", got)
	}
}

func TestRegionWiseSales(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 2, 50.0, "C001", "North"),
		txn("T002", "2024-01-02", "Gadget", 1, 30.0, "C002", "South"),
	}

	stats := RegionWiseSales(txns)
	if len(stats) != 2 {
		t.Fatalf("got %d regions, want 2", len(stats))
	}

	// Descending by total sales.
	if stats[0].Region != "North" || stats[0].TotalSales != 100.0 || stats[0].Percentage != 76.92 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Region != "South" || stats[1].TotalSales != 30.0 || stats[1].Percentage != 23.08 {
		t.Errorf("stats[1] = %+v", stats[1])
	}

	// Percentages sum to 100 within rounding tolerance.
	var sum float64
	for _, s := range stats {
		sum += s.Percentage
	}
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("percentages sum to %v", sum)
	}
}

func TestRegionWiseSalesEmpty(t *testing.T) {
	if stats := RegionWiseSales(nil); len(stats) != 0 {
		t.Errorf("got %d regions from empty input", len(stats))
	}
}

func TestTopSellingProductsRanksByQuantity(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 10, 1.0, "C001", "North"),  // qty 10, rev 10
		txn("T002", "2024-01-02", "Gadget", 2, 500.0, "C002", "South"), // qty 2, rev 1000
		txn("T003", "2024-01-03", "Widget", 5, 1.0, "C001", "North"),   // Widget total qty 15
		txn("T004", "2024-01-04", "Gizmo", 7, 3.0, "C003", "East"),     // qty 7
	}

	stats := TopSellingProducts(txns, 2)
	if len(stats) != 2 {
		t.Fatalf("got %d products, want 2", len(stats))
	}
	// Widget leads on quantity even though Gadget leads on revenue.
	if stats[0].Product != "Widget" || stats[0].Quantity != 15 || stats[0].Revenue != 15.0 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Product != "Gizmo" {
		t.Errorf("stats[1] = %+v, want Gizmo", stats[1])
	}
}

func TestTopSellingProductsDefaultN(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "A", 1, 1, "C001", "North"),
		txn("T002", "2024-01-01", "B", 2, 1, "C001", "North"),
		txn("T003", "2024-01-01", "C", 3, 1, "C001", "North"),
		txn("T004", "2024-01-01", "D", 4, 1, "C001", "North"),
		txn("T005", "2024-01-01", "E", 5, 1, "C001", "North"),
		txn("T006", "2024-01-01", "F", 6, 1, "C001", "North"),
	}
	if stats := TopSellingProducts(txns, 0); len(stats) != 5 {
		t.Errorf("default N kept %d products, want 5", len(stats))
	}
}

func TestCustomerAnalysis(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 2, 50.0, "C001", "North"), // C001: 100
		txn("T002", "2024-01-02", "Gadget", 1, 30.0, "C002", "South"), // C002: 30
		txn("T003", "2024-01-03", "Widget", 1, 25.0, "C001", "North"), // C001: 125 total, 2 orders
	}

	stats := CustomerAnalysis(txns)
	if len(stats) != 2 {
		t.Fatalf("got %d customers, want 2", len(stats))
	}

	top := stats[0]
	if top.CustomerID != "C001" || top.TotalSpent != 125.0 || top.Orders != 2 {
		t.Errorf("top customer = %+v", top)
	}
	if top.AverageOrderValue != 62.5 {
		t.Errorf("average order value = %v, want 62.5", top.AverageOrderValue)
	}
	if len(top.Products) != 1 || top.Products[0] != "Widget" {
		t.Errorf("distinct products = %v", top.Products)
	}
}

func TestCustomerAnalysisAverageRounding(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 1, 10.0, "C001", "North"),
		txn("T002", "2024-01-02", "Gadget", 1, 10.0, "C001", "North"),
		txn("T003", "2024-01-03", "Gizmo", 1, 5.0, "C001", "North"),
	}
	// 25 / 3 = 8.333... -> 8.33
	stats := CustomerAnalysis(txns)
	if stats[0].AverageOrderValue != 8.33 {
		t.Errorf("average order value = %v, want 8.33", stats[0].AverageOrderValue)
	}
}

func TestDailySalesTrendChronological(t *testing.T) {
	// Same-month dates with mixed day-of-month lengths; input deliberately
	// unsorted so a naive sort on insertion order would be wrong.
	txns := []types.Transaction{
		txn("T001", "2024-01-10", "Widget", 1, 10.0, "C001", "North"),
		txn("T002", "2024-01-09", "Gadget", 1, 20.0, "C002", "South"),
		txn("T003", "2024-01-10", "Gizmo", 1, 5.0, "C003", "East"),
		txn("T004", "2024-01-09", "Widget", 1, 1.0, "C002", "South"),
	}

	stats := DailySalesTrend(txns)
	if len(stats) != 2 {
		t.Fatalf("got %d days, want 2", len(stats))
	}
	if stats[0].Date != "2024-01-09" || stats[1].Date != "2024-01-10" {
		t.Errorf("dates out of order: %s, %s", stats[0].Date, stats[1].Date)
	}
	if stats[0].Revenue != 21.0 || stats[0].TransactionCount != 2 || stats[0].UniqueCustomers != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].UniqueCustomers != 2 {
		t.Errorf("stats[1] unique customers = %d, want 2", stats[1].UniqueCustomers)
	}
}

func TestDailySalesTrendEmpty(t *testing.T) {
	if stats := DailySalesTrend(nil); len(stats) != 0 {
		t.Errorf("got %d days from empty input", len(stats))
	}
}

func TestPeakSalesDay(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 1, 100.0, "C001", "North"),
		txn("T002", "2024-01-02", "Gadget", 1, 250.0, "C002", "South"),
		txn("T003", "2024-01-01", "Gizmo", 1, 50.0, "C003", "East"),
	}

	peak, ok := PeakSalesDay(txns)
	if !ok {
		t.Fatal("no peak day found")
	}
	if peak.Date != "2024-01-02" || peak.Revenue != 250.0 || peak.TransactionCount != 1 {
		t.Errorf("peak = %+v", peak)
	}
}

func TestPeakSalesDayTieBreakFirstSeen(t *testing.T) {
	// Both dates total 100; the later calendar date appears first in input
	// iteration order and must win the tie.
	txns := []types.Transaction{
		txn("T001", "2024-01-05", "Widget", 1, 100.0, "C001", "North"),
		txn("T002", "2024-01-02", "Gadget", 1, 100.0, "C002", "South"),
	}

	peak, ok := PeakSalesDay(txns)
	if !ok {
		t.Fatal("no peak day found")
	}
	if peak.Date != "2024-01-05" {
		t.Errorf("peak date = %s, want first-seen 2024-01-05", peak.Date)
	}
}

func TestPeakSalesDayEmpty(t *testing.T) {
	if _, ok := PeakSalesDay(nil); ok {
		t.Error("found a peak day in empty input")
	}
}

func TestLowPerformingProducts(t *testing.T) {
	txns := []types.Transaction{
		txn("T001", "2024-01-01", "Widget", 12, 1.0, "C001", "North"),
		txn("T002", "2024-01-02", "Gadget", 3, 10.0, "C002", "South"),
		txn("T003", "2024-01-03", "Gizmo", 9, 2.0, "C003", "East"),
		txn("T004", "2024-01-04", "Sprocket", 10, 1.0, "C004", "West"),
	}

	low := LowPerformingProducts(txns, 10)
	if len(low) != 2 {
		t.Fatalf("got %d low performers, want 2", len(low))
	}
	// Ascending by quantity; Sprocket (qty 10) is not strictly below 10.
	if low[0].Product != "Gadget" || low[1].Product != "Gizmo" {
		t.Errorf("low performers = %+v", low)
	}
}

func TestLowPerformingProductsEmpty(t *testing.T) {
	if low := LowPerformingProducts(nil, 10); len(low) != 0 {
		t.Errorf("got %d low performers from empty input", len(low))
	}
}
