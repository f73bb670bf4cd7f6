// =============================================================================
// Sales Analytics System - Validation and Filter Module
// =============================================================================
//
// This module classifies parsed transactions as valid or invalid and applies
// the optional region and amount filters.
//
// VALIDATION STRATEGY:
//   Every rule is conjunctive and applied independently to each record:
//   - All eight fields must be present (non-empty)
//   - Quantity and UnitPrice must be positive
//   - TransactionID, ProductID, and CustomerID must carry the T/P/C prefixes
//   Invalid records are counted, never reported individually.
//
// FILTER COMPOSITION:
//   Stages apply in the fixed order validation -> region -> amount. Each
//   stage narrows the surviving set and the summary records the delta removed
//   at that stage. A removed transaction is never re-admitted.
//
// =============================================================================

package validation

import (
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// FILTER DEFINITION
// =============================================================================

// Filter holds the optional predicates applied after validation.
type Filter struct {
	// Region retains only transactions whose Region equals this value,
	// matched exactly and case-sensitively. Empty means no region filter.
	Region string

	// MinAmount is the inclusive lower bound on Quantity x UnitPrice.
	// Nil means unbounded below.
	MinAmount *float64

	// MaxAmount is the inclusive upper bound on Quantity x UnitPrice.
	// Nil means unbounded above.
	MaxAmount *float64
}

// hasAmountBounds reports whether either amount bound is set.
func (f Filter) hasAmountBounds() bool {
	return f.MinAmount != nil || f.MaxAmount != nil
}

// withinAmount reports whether a transaction's amount lies inside the
// configured bounds, inclusive on both ends.
func (f Filter) withinAmount(txn types.Transaction) bool {
	amount := txn.Amount()
	if f.MinAmount != nil && amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && amount > *f.MaxAmount {
		return false
	}
	return true
}

// =============================================================================
// VALIDATE AND FILTER
// =============================================================================

// ValidateAndFilter runs the validation pass followed by the optional region
// and amount filters.
//
// PARAMETERS:
//   - transactions: The parsed transactions, in input order.
//   - filter: The optional predicates. The zero Filter applies none.
//
// RETURNS:
//   - The surviving transactions, in input order.
//   - The number of records rejected by validation.
//   - A FilterSummary with the stage-wise counts.
func ValidateAndFilter(transactions []types.Transaction, filter Filter) ([]types.Transaction, int, types.FilterSummary) {
	summary := types.FilterSummary{TotalInput: len(transactions)}

	valid := make([]types.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if !isValid(txn) {
			summary.Invalid++
			continue
		}
		valid = append(valid, txn)
	}

	if filter.Region != "" {
		before := len(valid)
		kept := valid[:0]
		for _, txn := range valid {
			if txn.Region == filter.Region {
				kept = append(kept, txn)
			}
		}
		valid = kept
		summary.FilteredByRegion = before - len(valid)
	}

	if filter.hasAmountBounds() {
		before := len(valid)
		kept := valid[:0]
		for _, txn := range valid {
			if filter.withinAmount(txn) {
				kept = append(kept, txn)
			}
		}
		valid = kept
		summary.FilteredByAmount = before - len(valid)
	}

	summary.FinalCount = len(valid)

	return valid, summary.Invalid, summary
}

// isValid applies the validation rules to a single transaction. The order of
// checks does not affect the outcome; all rules are conjunctive.
func isValid(txn types.Transaction) bool {
	if txn.TransactionID == "" || txn.Date == "" || txn.ProductID == "" ||
		txn.ProductName == "" || txn.CustomerID == "" || txn.Region == "" {
		return false
	}
	if txn.Quantity <= 0 || txn.UnitPrice <= 0 {
		return false
	}
	if !strings.HasPrefix(txn.TransactionID, "T") {
		return false
	}
	if !strings.HasPrefix(txn.ProductID, "P") {
		return false
	}
	if !strings.HasPrefix(txn.CustomerID, "C") {
		return false
	}
	return true
}
