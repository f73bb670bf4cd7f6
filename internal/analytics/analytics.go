// =============================================================================
// Sales Analytics System - Aggregation Engine
// =============================================================================
//
// This module computes the derived analytics over the valid-transaction
// collection. Every function here follows the same shape: build a map from
// group key to a plain accumulator record, fold each transaction into its
// group exactly once, then project and sort the accumulators into the output
// slice. First-seen group order is tracked so that ties and unsorted
// projections stay deterministic for a given input ordering.
//
// All functions are pure and independent: they take the transaction slice,
// mutate nothing, and tolerate an empty input by returning zero or empty
// results. They may be called concurrently against the same slice.
//
// =============================================================================

package analytics

import (
	"sort"
	"time"

	"github.com/ginjaninja78/sales-analytics/internal/types"
	"github.com/ginjaninja78/sales-analytics/pkg/utils"
)

// =============================================================================
// AGGREGATE STRUCTURES
// =============================================================================

// RegionStats summarizes one region's share of total sales.
type RegionStats struct {
	Region           string
	TotalSales       float64
	TransactionCount int

	// Percentage is this region's share of grand total revenue, rounded to
	// two decimal places. Zero when grand total revenue is zero.
	Percentage float64
}

// ProductStats summarizes units sold and revenue for one product name.
type ProductStats struct {
	Product  string
	Quantity int
	Revenue  float64
}

// CustomerStats summarizes one customer's purchase history.
type CustomerStats struct {
	CustomerID        string
	TotalSpent        float64
	Orders            int
	AverageOrderValue float64

	// Products is the sorted set of distinct product names purchased.
	Products []string
}

// DailyStats summarizes one calendar day of sales.
type DailyStats struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay is the single day with the strictly greatest total revenue.
type PeakDay struct {
	Date             string
	Revenue          float64
	TransactionCount int
}

// =============================================================================
// REVENUE
// =============================================================================

// TotalRevenue sums Quantity x UnitPrice over all transactions.
func TotalRevenue(transactions []types.Transaction) float64 {
	var total float64
	for _, txn := range transactions {
		total += txn.Amount()
	}
	return total
}

// =============================================================================
// REGION BREAKDOWN
// =============================================================================

// RegionWiseSales groups transactions by region and reports each region's
// sales, transaction count, and percentage of grand total revenue.
//
// RETURNS:
//   - Region stats ordered descending by total sales. Ties keep first-seen
//     region order.
func RegionWiseSales(transactions []types.Transaction) []RegionStats {
	type accumulator struct {
		sales float64
		count int
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)
	var grandTotal float64

	for _, txn := range transactions {
		acc, ok := groups[txn.Region]
		if !ok {
			acc = &accumulator{}
			groups[txn.Region] = acc
			order = append(order, txn.Region)
		}
		amount := txn.Amount()
		acc.sales += amount
		acc.count++
		grandTotal += amount
	}

	stats := make([]RegionStats, 0, len(order))
	for _, region := range order {
		acc := groups[region]
		s := RegionStats{
			Region:           region,
			TotalSales:       acc.sales,
			TransactionCount: acc.count,
		}
		if grandTotal > 0 {
			s.Percentage = utils.RoundFloat(acc.sales/grandTotal*100, 2)
		}
		stats = append(stats, s)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

// =============================================================================
// PRODUCT BREAKDOWN
// =============================================================================

// ProductBreakdown groups transactions by product name, summing quantity and
// revenue. Results keep first-seen product order; callers sort as needed.
func ProductBreakdown(transactions []types.Transaction) []ProductStats {
	groups := make(map[string]*ProductStats)
	order := make([]string, 0)

	for _, txn := range transactions {
		acc, ok := groups[txn.ProductName]
		if !ok {
			acc = &ProductStats{Product: txn.ProductName}
			groups[txn.ProductName] = acc
			order = append(order, txn.ProductName)
		}
		acc.Quantity += txn.Quantity
		acc.Revenue += txn.Amount()
	}

	stats := make([]ProductStats, 0, len(order))
	for _, product := range order {
		stats = append(stats, *groups[product])
	}

	return stats
}

// TopSellingProducts returns the top n products ordered descending by summed
// quantity. Revenue rides along but does not influence the ranking; the
// report's revenue-ranked product table is a separate sort. n <= 0 falls back
// to the default of 5.
func TopSellingProducts(transactions []types.Transaction, n int) []ProductStats {
	if n <= 0 {
		n = 5
	}

	stats := ProductBreakdown(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns every product whose summed quantity is
// strictly below the threshold, ordered ascending by quantity. threshold <= 0
// falls back to the default of 10.
func LowPerformingProducts(transactions []types.Transaction, threshold int) []ProductStats {
	if threshold <= 0 {
		threshold = 10
	}

	all := ProductBreakdown(transactions)
	low := make([]ProductStats, 0)
	for _, s := range all {
		if s.Quantity < threshold {
			low = append(low, s)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})

	return low
}

// =============================================================================
// CUSTOMER ANALYSIS
// =============================================================================

// CustomerAnalysis groups transactions by customer, reporting total spend,
// order count, average order value (rounded to two decimals), and the
// distinct products purchased.
//
// RETURNS:
//   - Customer stats ordered descending by total spend. Ties keep first-seen
//     customer order.
func CustomerAnalysis(transactions []types.Transaction) []CustomerStats {
	type accumulator struct {
		spent    float64
		orders   int
		products map[string]struct{}
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, txn := range transactions {
		acc, ok := groups[txn.CustomerID]
		if !ok {
			acc = &accumulator{products: make(map[string]struct{})}
			groups[txn.CustomerID] = acc
			order = append(order, txn.CustomerID)
		}
		acc.spent += txn.Amount()
		acc.orders++
		acc.products[txn.ProductName] = struct{}{}
	}

	stats := make([]CustomerStats, 0, len(order))
	for _, customerID := range order {
		acc := groups[customerID]

		products := make([]string, 0, len(acc.products))
		for p := range acc.products {
			products = append(products, p)
		}
		sort.Strings(products)

		stats = append(stats, CustomerStats{
			CustomerID:        customerID,
			TotalSpent:        acc.spent,
			Orders:            acc.orders,
			AverageOrderValue: utils.RoundFloat(acc.spent/float64(acc.orders), 2),
			Products:          products,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

// =============================================================================
// DAILY TREND
// =============================================================================

// DailySalesTrend groups transactions by date, reporting revenue, transaction
// count, and distinct customers per day.
//
// RETURNS:
//   - Daily stats in chronological order. Dates are parsed as calendar dates
//     for the sort key, so "2024-01-09" sorts before "2024-01-10" even though
//     a naive string sort of unpadded variants would disagree. Dates that do
//     not parse sort before parseable ones, ordered by their raw string.
func DailySalesTrend(transactions []types.Transaction) []DailyStats {
	type accumulator struct {
		revenue   float64
		count     int
		customers map[string]struct{}
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, txn := range transactions {
		acc, ok := groups[txn.Date]
		if !ok {
			acc = &accumulator{customers: make(map[string]struct{})}
			groups[txn.Date] = acc
			order = append(order, txn.Date)
		}
		acc.revenue += txn.Amount()
		acc.count++
		acc.customers[txn.CustomerID] = struct{}{}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return dayLess(order[i], order[j])
	})

	stats := make([]DailyStats, 0, len(order))
	for _, date := range order {
		acc := groups[date]
		stats = append(stats, DailyStats{
			Date:             date,
			Revenue:          acc.revenue,
			TransactionCount: acc.count,
			UniqueCustomers:  len(acc.customers),
		})
	}

	return stats
}

// dayLess orders two date strings by calendar date, falling back to string
// order when one side does not parse.
func dayLess(a, b string) bool {
	ta, okA := parseDay(a)
	tb, okB := parseDay(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA != okB:
		// Unparseable dates sort first.
		return !okA
	default:
		return a < b
	}
}

// parseDay parses a YYYY-MM-DD date string.
func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

// =============================================================================
// PEAK DAY
// =============================================================================

// PeakSalesDay scans the daily revenue totals and returns the date with the
// strictly greatest revenue. Ties resolve to the date first encountered in
// input iteration order. The second return value is false for empty input.
func PeakSalesDay(transactions []types.Transaction) (PeakDay, bool) {
	type accumulator struct {
		revenue float64
		count   int
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, txn := range transactions {
		acc, ok := groups[txn.Date]
		if !ok {
			acc = &accumulator{}
			groups[txn.Date] = acc
			order = append(order, txn.Date)
		}
		acc.revenue += txn.Amount()
		acc.count++
	}

	if len(order) == 0 {
		return PeakDay{}, false
	}

	peak := PeakDay{Date: order[0], Revenue: groups[order[0]].revenue, TransactionCount: groups[order[0]].count}
	for _, date := range order[1:] {
		acc := groups[date]
		if acc.revenue > peak.Revenue {
			peak = PeakDay{Date: date, Revenue: acc.revenue, TransactionCount: acc.count}
		}
	}

	return peak, true
}
