// =============================================================================
// Sales Analytics System - Shared Types
// =============================================================================
//
// This package contains shared domain types used across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - salesparser
//   - validation
//   - analytics
//   - enrichment
//   - report
//   - exporter
//
// =============================================================================

package types

import "strconv"

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single sales record parsed from the input file.
// A Transaction is immutable once constructed: the parser is the only
// component that creates one, and every later stage either copies it or
// reads it.
type Transaction struct {
	// TransactionID is the record identifier. Valid IDs start with "T".
	TransactionID string

	// Date is the transaction date in YYYY-MM-DD form. It is kept as a
	// string; components that need calendar ordering parse it on demand.
	Date string

	// ProductID is the product identifier. Valid IDs start with "P" and
	// carry a numeric suffix used as the catalog lookup key.
	ProductID string

	// ProductName is the cleaned product name. Commas from the raw field
	// are normalized to spaces and the result is trimmed.
	ProductName string

	// Quantity is the number of units sold. Valid quantities are > 0.
	Quantity int

	// UnitPrice is the per-unit price. Valid prices are > 0.
	UnitPrice float64

	// CustomerID is the customer identifier. Valid IDs start with "C".
	CustomerID string

	// Region is the sales region, matched case-sensitively by filters.
	Region string
}

// Amount returns Quantity x UnitPrice. The amount is always derived on
// demand and never stored, so it can never go stale.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// ProductKey returns the numeric catalog key derived from the ProductID by
// stripping the leading "P". The second return value is false when the
// remainder is not an integer (e.g. "PX"), which enrichment treats as
// unmatched rather than an error.
func (t Transaction) ProductKey() (int, bool) {
	if len(t.ProductID) < 2 {
		return 0, false
	}
	key, err := strconv.Atoi(t.ProductID[1:])
	if err != nil {
		return 0, false
	}
	return key, true
}

// =============================================================================
// CATALOG TYPES
// =============================================================================

// CatalogEntry is externally supplied product metadata keyed by the numeric
// product identifier. Entries are provided by the catalog service and copied
// verbatim into enriched transactions.
type CatalogEntry struct {
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// =============================================================================
// ENRICHED TRANSACTION
// =============================================================================

// EnrichedTransaction is a Transaction plus the catalog metadata resolved for
// its product key. The embedded Transaction is a copy; the original record is
// never mutated. The API fields are nil whenever Match is false.
type EnrichedTransaction struct {
	Transaction

	// APICategory is the catalog category, or nil if no entry matched.
	APICategory *string

	// APIBrand is the catalog brand, or nil if no entry matched.
	APIBrand *string

	// APIRating is the catalog rating, or nil if no entry matched.
	APIRating *float64

	// APIMatch reports whether a catalog entry was found for the derived
	// numeric product key.
	APIMatch bool
}

// =============================================================================
// FILTER SUMMARY
// =============================================================================

// FilterSummary records stage-wise counts from the validate-and-filter pass.
//
// The counters are deltas removed at each stage from the set surviving the
// prior stage, not a partition of TotalInput. In particular
// Invalid + FilteredByRegion + FilteredByAmount + FinalCount is NOT
// guaranteed to equal TotalInput; the fields are independent stage counters
// because filters apply sequentially to an already shrinking set.
type FilterSummary struct {
	// TotalInput is the number of parsed transactions before validation.
	TotalInput int

	// Invalid is the number of records rejected by validation rules.
	Invalid int

	// FilteredByRegion is the number of valid records removed by the
	// region predicate.
	FilteredByRegion int

	// FilteredByAmount is the number of records removed by the amount
	// range predicate after the region stage.
	FilteredByAmount int

	// FinalCount is the number of records surviving all stages.
	FinalCount int
}
